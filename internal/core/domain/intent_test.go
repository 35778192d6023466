package domain

import "testing"

func TestDetectIntentLatest(t *testing.T) {
	queries := []string{
		"ما آخر تحديث لمشروع المطار؟",
		"أعطني مستجدات مشروع الجسر",
		"ما هي الأخبار الأخيرة؟",
		"What is the latest on the bridge?",
		"Any recent progress?",
		"current status please",
		"Give me an UPDATE on the airport",
	}
	for _, q := range queries {
		if got := DetectIntent(q); got != IntentLatest {
			t.Errorf("DetectIntent(%q) = %q, want latest", q, got)
		}
	}
}

func TestDetectIntentSemantic(t *testing.T) {
	queries := []string{
		"هل تم تسليم المرحلة الأولى؟",
		"Was phase one delivered?",
		"why was the concrete pour delayed",
		"",
	}
	for _, q := range queries {
		if got := DetectIntent(q); got != IntentSemantic {
			t.Errorf("DetectIntent(%q) = %q, want semantic", q, got)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		query string
		want  Language
	}{
		{"ما آخر تحديث؟", LanguageArabic},
		{"status of مشروع airport", LanguageArabic},
		{"What is the latest?", LanguageEnglish},
		{"", LanguageEnglish},
		{"123 !?", LanguageEnglish},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.query); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestLatestKeywordsStable(t *testing.T) {
	if len(LatestKeywords(LanguageEnglish)) != 5 {
		t.Errorf("english keyword count = %d", len(LatestKeywords(LanguageEnglish)))
	}
	if len(LatestKeywords(LanguageArabic)) != 6 {
		t.Errorf("arabic keyword count = %d", len(LatestKeywords(LanguageArabic)))
	}
}
