package models

// Recognized priority literals. An empty priority is valid and means
// "no priority assigned".
const (
	PriorityP1 = "P1"
	PriorityP2 = "P2"
	PriorityP3 = "P3"
)

// TestCase represents a single test case parsed from one ingested row.
// Instances are immutable once created; the only permitted mutation is
// attaching an Analysis produced by the enrichment step.
type TestCase struct {
	ID          string    // Test Case ID cell, trimmed
	Title       string    // Display title (description cell or generated placeholder)
	Description string    // Test Case Description cell (same placeholder fallback as Title)
	Steps       []string  // Detail Steps cell split on line breaks, trimmed, empties removed
	Data        string    // Test Data cell
	Expected    string    // Expected Result cell
	Priority    string    // "P1", "P2", "P3" or ""
	Analysis    *Analysis // Enrichment result, nil when unavailable
}

// Analysis is the structured result of enriching a free-text expected-result
// field. All fields are optional; an empty field means the analyzer could not
// determine it.
type Analysis struct {
	Action         string `json:"action"`         // e.g. "navigation", "click"
	Target         string `json:"target"`         // element or page the expectation refers to
	ValidationType string `json:"validationType"` // "url", "text", "visibility" or ""
	ExpectedValue  string `json:"expectedValue"`  // value the expectation compares against
	URL            string `json:"url"`            // destination URL for navigation expectations
}
