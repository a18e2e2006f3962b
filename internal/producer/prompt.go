package producer

import (
	"fmt"
	"strings"

	"github.com/harrison/testforge/internal/models"
)

// BuildPrompt renders the generation request for one job. The prompt spells
// out the file and naming contract; the conformance post-processor repairs
// the deviations the producer makes anyway.
func BuildPrompt(groups *models.GroupSet, pageObjects []string) string {
	var b strings.Builder

	b.WriteString("Generate a Playwright TypeScript test project as JSON in the form ")
	b.WriteString(`{"files": {"<relative path>": "<file content>", ...}}.` + "\n\n")

	b.WriteString("File contract:\n")
	for _, id := range pageObjects {
		fmt.Fprintf(&b, "- page-objects/%s.ts: page object class %s\n", id, id)
	}
	for _, g := range groups.Ordered() {
		fmt.Fprintf(&b, "- tests/%s.spec.ts: test file for scenario %q\n", g.ShortFeatureName, g.ScenarioTitle)
	}
	b.WriteString("- fixtures/pomFixtures.ts: fixture extending the base test with one page object per class\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Each test file starts with: import test from '../fixtures/pomFixtures';\n")
	b.WriteString("- Each test file has exactly one test.describe block whose title is the exact scenario title below, character for character.\n")
	b.WriteString("- Inside it, one test(...) per test case, async, in the order given, with the test case description as the title.\n")
	b.WriteString("- Implement each step with page object methods; do not invent extra tests.\n\n")

	b.WriteString("Scenarios:\n")
	for _, g := range groups.Ordered() {
		fmt.Fprintf(&b, "\n## %s\n", g.ScenarioTitle)
		for i, tc := range g.Tests {
			fmt.Fprintf(&b, "%d. %s\n", i+1, tc.Description)
			if tc.ID != "" {
				fmt.Fprintf(&b, "   ID: %s\n", tc.ID)
			}
			for _, step := range tc.Steps {
				fmt.Fprintf(&b, "   - %s\n", step)
			}
			if tc.Data != "" {
				fmt.Fprintf(&b, "   Data: %s\n", tc.Data)
			}
			if tc.Expected != "" {
				fmt.Fprintf(&b, "   Expected: %s\n", tc.Expected)
			}
		}
	}

	return b.String()
}
