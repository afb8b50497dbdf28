// ABOUTME: Tests for FTS5 keyword search against transcript and analysis indexes
// ABOUTME: Verifies trigger-maintained indexes, scoring, and filters
package sqlite

import (
	"testing"

	"github.com/harper/recall-standalone/internal/models"
)

func seedKeywordFixture(t *testing.T) (*DB, int64, int64, int64) {
	t.Helper()
	db := newTestDB(t)
	transcripts := NewTranscriptStore(db)
	analyses := NewAnalysisStore(db)

	id1, err := transcripts.Add("kubernetes.txt", "2026-02-10", "2026-02-10T09:00:00Z", "manual", "",
		"We debugged the kubernetes ingress controller and fixed the deployment rollout.")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	id2, err := transcripts.Add("cooking.txt", "2026-05-20", "2026-05-20T09:00:00Z", "manual", "",
		"Tried a new pasta recipe with garlic and fresh basil from the garden.")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	id3, err := transcripts.Add("planning.txt", "2026-07-01", "2026-07-01T09:00:00Z", "manual", "",
		"Quarterly planning session covering hiring and budget approvals.")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := analyses.Add(&models.Analysis{
		TranscriptID:   id3,
		Summary:        "Planning meeting about kubernetes migration costs",
		Classification: "meeting",
	}); err != nil {
		t.Fatalf("analyses.Add() error = %v", err)
	}

	return db, id1, id2, id3
}

func TestKeywordStore_MatchesContent(t *testing.T) {
	db, id1, _, _ := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	results, err := store.Search(`"pasta"*`, 10, 0, "", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(results))
	}
	if results[0].Filename != "cooking.txt" {
		t.Errorf("Filename = %q, want cooking.txt", results[0].Filename)
	}
	if results[0].Score <= 0 {
		t.Errorf("Score = %f, want positive relevance", results[0].Score)
	}
	if results[0].TranscriptID == id1 {
		t.Error("matched the wrong transcript")
	}
}

func TestKeywordStore_MatchesAnalysisSummary(t *testing.T) {
	db, id1, _, id3 := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	// "kubernetes" occurs in transcript 1 content and transcript 3's analysis summary
	results, err := store.Search(`"kubernetes"*`, 10, 0, "", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}

	found := map[int64]bool{}
	for _, r := range results {
		found[r.TranscriptID] = true
	}
	if !found[id1] || !found[id3] {
		t.Errorf("results = %v, want transcripts %d and %d", found, id1, id3)
	}
}

func TestKeywordStore_DateFilter(t *testing.T) {
	db, _, _, id3 := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	results, err := store.Search(`"kubernetes"*`, 10, 0, "2026-06-01", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1 after date filter", len(results))
	}
	if results[0].TranscriptID != id3 {
		t.Errorf("TranscriptID = %d, want %d", results[0].TranscriptID, id3)
	}
}

func TestKeywordStore_ClassificationFilter(t *testing.T) {
	db, _, _, id3 := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	results, err := store.Search(`"kubernetes"*`, 10, 0, "", "", "meeting")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].TranscriptID != id3 {
		t.Fatalf("classification filter returned %d results, want only the meeting", len(results))
	}

	none, err := store.Search(`"kubernetes"*`, 10, 0, "", "", "journal")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown classification returned %d results, want 0", len(none))
	}
}

func TestKeywordStore_LimitAndOffset(t *testing.T) {
	db, _, _, _ := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	page1, err := store.Search(`"kubernetes"*`, 1, 0, "", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	page2, err := store.Search(`"kubernetes"*`, 1, 1, "", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page1) != 1 || len(page2) != 1 {
		t.Fatalf("pagination returned %d/%d results, want 1/1", len(page1), len(page2))
	}
	if page1[0].TranscriptID == page2[0].TranscriptID {
		t.Error("offset returned the same transcript twice")
	}
}

func TestKeywordStore_NoMatches(t *testing.T) {
	db, _, _, _ := seedKeywordFixture(t)
	store := NewKeywordStore(db)

	results, err := store.Search(`"zyzzyva"*`, 10, 0, "", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d results for nonsense term, want 0", len(results))
	}
}
