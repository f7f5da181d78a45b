// Package history keeps the record of evaluated passwords used for
// statistics. Only masked passwords are ever stored.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

// Entry is one evaluation outcome.
type Entry struct {
	ID        string          `json:"id"`
	Masked    string          `json:"masked"`
	Score     int             `json:"score"`
	Strength  scorer.Strength `json:"strength"`
	CheckedAt time.Time       `json:"checked_at"`
}

// NewEntry builds an entry for password and its report, stamped now.
func NewEntry(password string, r scorer.Report) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Masked:    Mask(password),
		Score:     r.TotalScore,
		Strength:  r.Strength,
		CheckedAt: time.Now().UTC(),
	}
}

// Mask hides everything but the first and last rune: "p******d". Passwords
// of 2 or fewer runes become "**". This is the only form ever stored.
func Mask(password string) string {
	runes := []rune(password)
	n := len(runes)
	if n <= 2 {
		return "**"
	}
	return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
}

// Preview is a display-only abbreviation: passwords longer than 16 runes
// show their first 8 and last 5 runes, shorter ones are masked. It must
// never be persisted.
func Preview(password string) string {
	runes := []rune(password)
	if n := len(runes); n > 16 {
		return string(runes[:8]) + "..." + string(runes[n-5:])
	}
	return Mask(password)
}

// Store records evaluations and summarises them.
type Store interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
	Clear(ctx context.Context) error
}

// Stats summarises the recorded evaluations.
type Stats struct {
	Total   int                     `json:"total"`
	Average float64                 `json:"average_score"`
	Counts  map[scorer.Strength]int `json:"counts"`
}

// Percent returns the share of entries with strength s, in percent.
func (s Stats) Percent(st scorer.Strength) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[st]) / float64(s.Total) * 100
}

// Summarize computes Stats over entries.
func Summarize(entries []Entry) Stats {
	st := Stats{Counts: emptyCounts()}
	sum := 0
	for _, e := range entries {
		st.Total++
		sum += e.Score
		st.Counts[e.Strength]++
	}
	if st.Total > 0 {
		st.Average = float64(sum) / float64(st.Total)
	}
	return st
}

func emptyCounts() map[scorer.Strength]int {
	counts := make(map[scorer.Strength]int, len(scorer.Strengths))
	for _, s := range scorer.Strengths {
		counts[s] = 0
	}
	return counts
}
