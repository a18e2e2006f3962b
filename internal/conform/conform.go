// Package conform is the code conformance post-processor. It makes a
// best-effort, line-oriented pass over the files a generative producer
// returned, repairing scenario titles, case titles, tag prefixes and
// missing assertions, and unconditionally regenerating the fixture-wiring
// file. It never parses the generated code as a real grammar.
package conform

import (
	"path"
	"regexp"
	"strings"

	"github.com/harrison/testforge/internal/diag"
	"github.com/harrison/testforge/internal/models"
)

// TestsPrefix is the conventional path family holding generated test files.
const TestsPrefix = "tests/"

// Tag prefixes prepended to case titles by priority.
const (
	tagsP1 = "@smoke @reg "
	tagsP2 = "@sanity @reg "
	tagsP3 = "@reg "
)

var (
	// namedImportPattern matches a first line importing a named binding
	// called "test" from the fixture path. The producer is asked to emit a
	// default import, but routinely emits the named form instead.
	namedImportPattern = regexp.MustCompile(`^import\s*\{\s*test\s*\}\s*from\s*['"]([^'"]*pomFixtures[^'"]*)['"];?\s*$`)

	// describePattern matches a scenario declaration opening a block with a
	// single string-literal title.
	describePattern = regexp.MustCompile(`test\.describe\(\s*(['"])((?:[^'"\\]|\\.)*?)(['"])`)

	// casePattern matches a case declaration with a single string-literal
	// title opening an asynchronous block.
	casePattern = regexp.MustCompile(`^\s*test\(\s*(['"])((?:[^'"\\]|\\.)*?)(['"])\s*,\s*async`)
)

// bannedTitleFragments mark synthetic titles the producer invented instead
// of copying the source text; a case title containing one is always rewritten.
var bannedTitleFragments = []string{"Test for", "Case", "Functionallity", "Scenario"}

// lookaheadWindow is the number of lines after a case declaration inspected
// for an existing assertion before injecting one.
const lookaheadWindow = 5

// Processor rewrites a generated file set so it conforms to the ingested
// scenario groups. The zero value is not usable; construct with NewProcessor.
type Processor struct {
	locator InsertionLocator
}

// NewProcessor creates a Processor with the default brace-depth insertion
// locator.
func NewProcessor() *Processor {
	return &Processor{locator: BraceDepthLocator{}}
}

// NewProcessorWithLocator creates a Processor with a custom insertion
// locator, allowing a real parser to substitute for the brace-depth
// heuristic.
func NewProcessorWithLocator(loc InsertionLocator) *Processor {
	return &Processor{locator: loc}
}

// TagPrefix returns the tag prefix expected before a case title for the
// given priority: P1 → "@smoke @reg ", P2 → "@sanity @reg ", P3 → "@reg ",
// anything else → "".
func TagPrefix(priority string) string {
	switch strings.ToUpper(strings.TrimSpace(priority)) {
	case models.PriorityP1:
		return tagsP1
	case models.PriorityP2:
		return tagsP2
	case models.PriorityP3:
		return tagsP3
	default:
		return ""
	}
}

// Process rewrites every file under the tests path in place and regenerates
// the fixture-wiring file from the page-object identifiers. Every key
// present in files on input remains present on output; only tests/* values
// and the fixture value are rewritten. All irregularities are reported in
// the returned diagnostics list; nothing here is fatal.
func (p *Processor) Process(groups *models.GroupSet, files models.FileSet, pageObjects []string) *diag.List {
	diags := &diag.List{}

	for _, filePath := range files.Paths() {
		if strings.HasPrefix(filePath, TestsPrefix) {
			files[filePath] = p.processTestFile(filePath, files[filePath], groups, diags)
			continue
		}
		if path.Base(filePath) == fixtureFileName {
			files[filePath] = RenderFixture(pageObjects)
		}
	}

	return diags
}

// processTestFile applies the per-file conformance steps: the import shim,
// scenario-title correction, case-title correction with tag prefixes, and
// assertion injection.
func (p *Processor) processTestFile(filePath, content string, groups *models.GroupSet, diags *diag.List) string {
	lines := strings.Split(content, "\n")

	if len(lines) > 0 {
		if m := namedImportPattern.FindStringSubmatch(lines[0]); m != nil {
			lines[0] = "import test from '" + m[1] + "';"
		}
	}

	group, ok := groups.Get(baseName(filePath))
	if !ok {
		diags.FileWarnf("conform", filePath, "no scenario group owns this file; left untouched")
		return strings.Join(lines, "\n")
	}

	caseIndex := 0
	for i := 0; i < len(lines); i++ {
		if loc := describePattern.FindStringSubmatchIndex(lines[i]); loc != nil {
			lines[i] = replaceSpan(lines[i], loc[4], loc[5], group.ScenarioTitle)
			continue
		}

		loc := casePattern.FindStringSubmatchIndex(lines[i])
		if loc == nil {
			continue
		}
		if caseIndex >= len(group.Tests) {
			caseIndex++
			continue
		}
		tc := group.Tests[caseIndex]
		caseIndex++

		captured := lines[i][loc[4]:loc[5]]
		wantTitle := TagPrefix(tc.Priority) + tc.Description
		if captured != wantTitle || containsBannedFragment(captured) {
			lines[i] = replaceSpan(lines[i], loc[4], loc[5], wantTitle)
		}

		lines = p.injectAssertion(lines, i, tc, filePath, diags)
	}

	return strings.Join(lines, "\n")
}

// injectAssertion synthesizes and inserts at most one assertion line for the
// case declared on lines[caseLine]. Nothing is injected when the expected
// result is empty or an assertion already exists within the lookahead window.
func (p *Processor) injectAssertion(lines []string, caseLine int, tc models.TestCase, filePath string, diags *diag.List) []string {
	if strings.TrimSpace(tc.Expected) == "" {
		return lines
	}

	for j := caseLine + 1; j < len(lines) && j <= caseLine+lookaheadWindow; j++ {
		if assertionPattern.MatchString(lines[j]) {
			return lines
		}
	}

	target, found := p.locator.LocateInsertionPoint(lines, caseLine)
	if !found {
		diags.FileWarnf("conform", filePath, "block opened at line %d never closes; assertion not injected", caseLine+1)
		return lines
	}

	indent := leadingWhitespace(lines[caseLine]) + "  "
	injected := indent + synthesizeAssertion(tc)

	lines = append(lines, "")
	copy(lines[target+1:], lines[target:])
	lines[target] = injected
	return lines
}

// baseName strips the directory and everything from the first dot of a
// generated file path, yielding the short feature name the file claims.
func baseName(filePath string) string {
	name := path.Base(filePath)
	if dot := strings.Index(name, "."); dot >= 0 {
		return name[:dot]
	}
	return name
}

// replaceSpan substitutes lines[start:end] with repl, leaving the rest of
// the line intact.
func replaceSpan(line string, start, end int, repl string) string {
	return line[:start] + repl + line[end:]
}

func containsBannedFragment(title string) bool {
	for _, fragment := range bannedTitleFragments {
		if strings.Contains(title, fragment) {
			return true
		}
	}
	return false
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
