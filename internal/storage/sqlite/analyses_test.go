// ABOUTME: Tests for analysis storage operations
// ABOUTME: Verifies append-only semantics and JSON list round-trips
package sqlite

import (
	"reflect"
	"testing"

	"github.com/harper/recall-standalone/internal/models"
)

func TestAnalysisStore_AddAndLatest(t *testing.T) {
	db := newTestDB(t)
	transcripts := NewTranscriptStore(db)
	analyses := NewAnalysisStore(db)

	id, err := transcripts.Add("standup.txt", "2026-08-30", "", "manual", "", "daily standup notes")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err = analyses.Add(&models.Analysis{
		TranscriptID:   id,
		Mode:           "full",
		Model:          "gpt-4o-mini",
		Summary:        "Team discussed sprint blockers",
		ActionItems:    []string{"fix CI", "review PR"},
		Tags:           []string{"standup", "sprint"},
		Classification: "meeting",
		Sentiment:      "neutral",
		Confidence:     0.92,
	})
	if err != nil {
		t.Fatalf("analyses.Add() error = %v", err)
	}

	got, err := analyses.LatestByTranscript(id)
	if err != nil {
		t.Fatalf("LatestByTranscript() error = %v", err)
	}
	if got == nil {
		t.Fatal("LatestByTranscript() returned nil for existing analysis")
	}
	if got.Summary != "Team discussed sprint blockers" {
		t.Errorf("Summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.ActionItems, []string{"fix CI", "review PR"}) {
		t.Errorf("ActionItems = %v", got.ActionItems)
	}
	if !reflect.DeepEqual(got.Tags, []string{"standup", "sprint"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Confidence != 0.92 {
		t.Errorf("Confidence = %f, want 0.92", got.Confidence)
	}
}

func TestAnalysisStore_LatestWinsAfterReanalysis(t *testing.T) {
	db := newTestDB(t)
	transcripts := NewTranscriptStore(db)
	analyses := NewAnalysisStore(db)

	id, _ := transcripts.Add("notes.txt", "2026-08-30", "", "manual", "", "some notes")

	if _, err := analyses.Add(&models.Analysis{TranscriptID: id, Summary: "first pass"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := analyses.Add(&models.Analysis{TranscriptID: id, Summary: "second pass"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := analyses.LatestByTranscript(id)
	if err != nil {
		t.Fatalf("LatestByTranscript() error = %v", err)
	}
	if got.Summary != "second pass" {
		t.Errorf("Summary = %q, want most recent analysis", got.Summary)
	}

	// Both rows are retained
	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM analysis WHERE transcript_id = ?", id).Scan(&count); err != nil {
		t.Fatalf("counting analyses: %v", err)
	}
	if count != 2 {
		t.Errorf("analysis rows = %d, want 2 (append-only)", count)
	}
}

func TestAnalysisStore_LatestMissing(t *testing.T) {
	db := newTestDB(t)
	analyses := NewAnalysisStore(db)

	got, err := analyses.LatestByTranscript(42)
	if err != nil {
		t.Fatalf("LatestByTranscript() error = %v", err)
	}
	if got != nil {
		t.Errorf("LatestByTranscript() = %+v, want nil", got)
	}
}
