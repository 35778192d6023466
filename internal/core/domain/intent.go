package domain

import (
	"strings"
	"unicode"
)

// Intent classifies what a query is asking for.
type Intent string

const (
	// IntentLatest requests the most recent entry by timestamp; no index access.
	IntentLatest Intent = "latest"

	// IntentSemantic requests entries similar in meaning to the query.
	IntentSemantic Intent = "semantic"
)

// latestKeywords is the rule table for intent classification, keyed by language.
// A query containing any keyword as a substring (after lowercasing) is a
// "latest" request. This is a fixed deterministic rule, not a learned model;
// the keyword set must stay stable for behavioral compatibility.
var latestKeywords = map[Language][]string{
	LanguageEnglish: {"latest", "current", "now", "update", "recent"},
	LanguageArabic:  {"آخر", "الأخيرة", "الراهنة", "الوقت الحالي", "مستجدات", "التحديث"},
}

// LatestKeywords returns the keyword set for a language. The returned slice
// must not be mutated.
func LatestKeywords(lang Language) []string {
	return latestKeywords[lang]
}

// DetectIntent classifies a query as a latest-update request or a semantic
// similarity request.
func DetectIntent(query string) Intent {
	q := strings.ToLower(query)
	for _, keywords := range latestKeywords {
		for _, k := range keywords {
			if strings.Contains(q, k) {
				return IntentLatest
			}
		}
	}
	return IntentSemantic
}

// Language selects the localization of user-facing text.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// DetectLanguage picks the reply language from the query script: any
// Arabic-range character selects Arabic, otherwise English. A character-range
// membership test, not a language-detection model.
func DetectLanguage(query string) Language {
	for _, r := range query {
		if unicode.Is(unicode.Arabic, r) {
			return LanguageArabic
		}
	}
	return LanguageEnglish
}
