package domain

import (
	"fmt"
	"strings"
)

// Localized fixed messages for empty result sets.
const (
	noResultsArabic  = "لم يتم العثور على تحديث مرتبط بالاستفسار."
	noResultsEnglish = "No relevant updates found."
)

// Summarize renders a ranked result list as a localized human-readable digest:
// a count-prefixed header followed by one line per result with the entry text
// and the date portion of its timestamp.
func Summarize(results []RankedEntry, lang Language) string {
	if len(results) == 0 {
		if lang == LanguageArabic {
			return noResultsArabic
		}
		return noResultsEnglish
	}

	var b strings.Builder
	if lang == LanguageArabic {
		fmt.Fprintf(&b, "نعم، تم العثور على %d تحديثات ذات صلة:\n", len(results))
		for _, r := range results {
			fmt.Fprintf(&b, "- '%s' بتاريخ %s\n", r.Text, r.Date())
		}
	} else {
		fmt.Fprintf(&b, "Yes, %d relevant updates found:\n", len(results))
		for _, r := range results {
			fmt.Fprintf(&b, "- '%s' on %s\n", r.Text, r.Date())
		}
	}
	return strings.TrimSpace(b.String())
}
