// ABOUTME: Benchmark scenario data structures and the built-in scenario set
// ABOUTME: Each scenario seeds a corpus and defines ground truth for its queries

package retrieval

// Scenario is one complete retrieval benchmark: a corpus to ingest and
// a set of queries with ground truth.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Corpus      []SeedDocument
	Queries     []QueryCase
}

// SeedDocument is one document ingested before the scenario's queries run
type SeedDocument struct {
	Filename string
	Date     string
	Content  string
}

// QueryCase is a single search or question with expected outcomes
type QueryCase struct {
	Query string
	Mode  string // hybrid, keyword, or semantic

	// Filenames that must appear in the top results
	ExpectedDocs []string
	// Filenames that must NOT appear in the results
	ForbiddenDocs []string
	// How many results count as "top" for the expectation (0 = all returned)
	TopK int

	// When true the query runs through the answerer; expectations below
	// then apply to the generated answer text.
	Ask               bool
	ExpectedInAnswer  []string
	ForbiddenInAnswer []string
}

// BuiltinScenarios returns the standard benchmark scenario set
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			ID:          "1",
			Name:        "Exact terminology lookup",
			Description: "Keyword search must find documents by their exact terms and keep unrelated ones out",
			Corpus: []SeedDocument{
				{Filename: "incident-review.txt", Date: "2026-02-03", Content: "Postmortem for the checkout outage: the payment gateway timed out after the certificate rotation, and retries amplified the load. Action item: add certificate expiry alerts."},
				{Filename: "garden-notes.txt", Date: "2026-02-10", Content: "Started tomato seedlings indoors. The basil from last year reseeded itself along the fence."},
				{Filename: "hiring-sync.txt", Date: "2026-02-17", Content: "Reviewed the backend engineer pipeline. Two candidates moved to onsite; the sourcing funnel needs more volume."},
			},
			Queries: []QueryCase{
				{
					Query:         "certificate rotation",
					Mode:          "keyword",
					ExpectedDocs:  []string{"incident-review.txt"},
					ForbiddenDocs: []string{"garden-notes.txt", "hiring-sync.txt"},
				},
				{
					Query:         "tomato seedlings",
					Mode:          "keyword",
					ExpectedDocs:  []string{"garden-notes.txt"},
					ForbiddenDocs: []string{"incident-review.txt"},
				},
			},
		},
		{
			ID:          "2",
			Name:        "Hybrid ranking",
			Description: "A document matching both keywords and semantics must outrank single-signal matches",
			Corpus: []SeedDocument{
				{Filename: "migration-plan.txt", Date: "2026-03-01", Content: "Database migration plan: dual-write to the new cluster for a week, then flip reads behind the feature flag. Rollback is a config change."},
				{Filename: "migration-retro.txt", Date: "2026-03-20", Content: "The migration went smoothly. Dual-write caught two schema mismatches before the read cutover."},
				{Filename: "team-lunch.txt", Date: "2026-03-05", Content: "Voted on the offsite restaurant. Thai place won by a wide margin."},
			},
			Queries: []QueryCase{
				{
					Query:         "database migration rollback",
					Mode:          "hybrid",
					ExpectedDocs:  []string{"migration-plan.txt"},
					ForbiddenDocs: []string{"team-lunch.txt"},
					TopK:          1,
				},
			},
		},
		{
			ID:          "3",
			Name:        "Grounded answering",
			Description: "Answers must cite the right source and stay grounded in the corpus",
			Corpus: []SeedDocument{
				{Filename: "oncall-handoff.txt", Date: "2026-04-07", Content: "Handoff notes: the alerting threshold for queue depth was raised to 5000 after last week's false pages. Watch the consumer lag dashboard on Tuesdays when the batch jobs run."},
				{Filename: "book-club.txt", Date: "2026-04-09", Content: "Next book club pick is a history of the transcontinental railroad."},
			},
			Queries: []QueryCase{
				{
					Query:            "queue depth alerting threshold",
					Mode:             "hybrid",
					ExpectedDocs:     []string{"oncall-handoff.txt"},
					Ask:              true,
					ExpectedInAnswer: []string{"5000"},
				},
			},
		},
	}
}
