package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for entry timestamps.
// ISO-8601 without zone, matching what external tools write into the entry logs.
// Lexicographic order on these strings equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.999999"

// Entry is a single logged project update. Entries are immutable once stored;
// corrections happen by appending new entries, never by editing in place.
type Entry struct {
	ProjectID string `json:"project_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Validate checks the invariants an entry must satisfy before it is accepted.
func (e *Entry) Validate() error {
	if e.ProjectID == "" {
		return fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Errorf("%w: entry text cannot be empty", ErrInvalidInput)
	}
	return nil
}

// Normalize fills defaults: a missing timestamp becomes the ingestion time.
func (e *Entry) Normalize(now time.Time) {
	if e.Timestamp == "" {
		e.Timestamp = now.UTC().Format(TimestampLayout)
	}
}

// Latest returns the chronologically latest entry, relying on ISO-8601
// timestamps sorting lexically. Returns ErrNoEntries for an empty slice.
func Latest(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrNoEntries
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Timestamp > latest.Timestamp {
			latest = e
		}
	}
	return latest, nil
}

// RankedEntry is a search hit. Score is the raw squared-L2 distance between the
// query embedding and the entry embedding: LOWER means MORE similar. It is a
// dissimilarity score - do not treat it as higher-is-better relevance.
type RankedEntry struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// Date returns the date portion (first 10 characters) of the timestamp.
func (r RankedEntry) Date() string {
	if len(r.Timestamp) < 10 {
		return r.Timestamp
	}
	return r.Timestamp[:10]
}
