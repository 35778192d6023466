package domain

import (
	"errors"
	"testing"
	"time"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"valid", Entry{ProjectID: "airport", Text: "تم الصب"}, false},
		{"missing project", Entry{Text: "تم الصب"}, true},
		{"empty text", Entry{ProjectID: "airport", Text: ""}, true},
		{"whitespace text", Entry{ProjectID: "airport", Text: "   \t"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("want ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEntryNormalizeDefaultsTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	e := Entry{ProjectID: "p", Text: "text"}
	e.Normalize(now)
	if e.Timestamp != "2024-03-05T10:30:00" {
		t.Errorf("timestamp = %q", e.Timestamp)
	}

	e2 := Entry{ProjectID: "p", Text: "text", Timestamp: "2023-01-01T00:00:00"}
	e2.Normalize(now)
	if e2.Timestamp != "2023-01-01T00:00:00" {
		t.Errorf("existing timestamp was overwritten: %q", e2.Timestamp)
	}
}

func TestLatest(t *testing.T) {
	entries := []Entry{
		{Text: "first", Timestamp: "2024-01-01T09:00:00"},
		{Text: "newest", Timestamp: "2024-03-05T08:00:00"},
		{Text: "middle", Timestamp: "2024-02-10T23:59:59"},
	}

	latest, err := Latest(entries)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.Text != "newest" {
		t.Errorf("latest = %q, want %q", latest.Text, "newest")
	}
}

func TestLatestEmpty(t *testing.T) {
	if _, err := Latest(nil); !errors.Is(err, ErrNoEntries) {
		t.Errorf("want ErrNoEntries, got %v", err)
	}
}

func TestRankedEntryDate(t *testing.T) {
	r := RankedEntry{Timestamp: "2024-03-05T08:00:00.123456"}
	if got := r.Date(); got != "2024-03-05" {
		t.Errorf("Date() = %q", got)
	}

	short := RankedEntry{Timestamp: "2024"}
	if got := short.Date(); got != "2024" {
		t.Errorf("Date() on short timestamp = %q", got)
	}
}
