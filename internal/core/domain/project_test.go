package domain

import "testing"

func TestMatchProject(t *testing.T) {
	projects := []Project{
		{ID: "airport", Name: "المطار"},
		{ID: "bridge", Name: "Bridge"},
	}

	tests := []struct {
		query  string
		wantID string
		wantOK bool
	}{
		{"ما آخر تحديث لمشروع المطار؟", "airport", true},
		{"what is the latest on the BRIDGE?", "bridge", true},
		{"status of the tunnel", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		p, ok := MatchProject(projects, tt.query)
		if ok != tt.wantOK {
			t.Errorf("MatchProject(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			continue
		}
		if ok && p.ID != tt.wantID {
			t.Errorf("MatchProject(%q) = %q, want %q", tt.query, p.ID, tt.wantID)
		}
	}
}

func TestMatchProjectIgnoresUnnamed(t *testing.T) {
	projects := []Project{{ID: "anon", Name: ""}}
	if _, ok := MatchProject(projects, "anything"); ok {
		t.Error("project with empty name must never match")
	}
}
