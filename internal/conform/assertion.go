package conform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/testforge/internal/models"
)

// assertionPattern matches lines that already contain an assertion, a
// wait-style call or a previously synthesized comment fallback, so a second
// pass never injects a duplicate.
var assertionPattern = regexp.MustCompile(`expect\(|waitForURL\(|waitFor\w*\(|// Expected:|// TODO: verify`)

// urlPattern extracts the first URL from free-form expected-result text.
var urlPattern = regexp.MustCompile(`https?://[^\s'"]+`)

// synthesizeAssertion produces exactly one statement (without indentation)
// for a test case's expected result. Selection order: structured analysis
// rules first (navigation URL, text containment, visibility, generic
// verification), then keyword scanning of the raw expected text, then a
// plain comment echoing the expected text verbatim.
func synthesizeAssertion(tc models.TestCase) string {
	if a := tc.Analysis; a != nil {
		if strings.Contains(strings.ToLower(a.Action), "navigat") && a.URL != "" {
			return fmt.Sprintf("await page.waitForURL('%s');", escapeSingle(a.URL))
		}
		switch strings.ToLower(a.ValidationType) {
		case "text":
			if a.ExpectedValue != "" {
				value := escapeSingle(a.ExpectedValue)
				return fmt.Sprintf("await expect(page.locator('text=%s')).toContainText('%s');", value, value)
			}
		case "visibility", "visible":
			if a.Target != "" {
				return fmt.Sprintf("await expect(page.locator('%s')).toBeVisible();", escapeSingle(a.Target))
			}
		}
		if a.Target != "" && a.ExpectedValue != "" {
			return fmt.Sprintf("// TODO: verify that %s matches %s", a.Target, a.ExpectedValue)
		}
	}

	expected := tc.Expected
	lowered := strings.ToLower(expected)

	if url := urlPattern.FindString(expected); url != "" {
		return fmt.Sprintf("await page.waitForURL('%s');", escapeSingle(strings.TrimRight(url, ".,;)")))
	}
	if strings.Contains(lowered, "visible") || strings.Contains(lowered, "displayed") {
		return fmt.Sprintf("await expect(page.locator('text=%s')).toBeVisible();", escapeSingle(expected))
	}
	if strings.Contains(lowered, "text") || strings.Contains(lowered, "message") || strings.Contains(lowered, "value") {
		return fmt.Sprintf("await expect(page.locator('body')).toContainText('%s');", escapeSingle(expected))
	}

	return "// Expected: " + expected
}

// escapeSingle escapes single quotes and backslashes for embedding a value
// in a single-quoted string literal.
func escapeSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
