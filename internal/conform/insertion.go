package conform

import "strings"

// InsertionLocator finds the line before which a synthesized assertion
// should be inserted, given the index of the case-declaration line. It
// exists as an interface so the brace-depth heuristic can be swapped for a
// real parser without touching call sites.
type InsertionLocator interface {
	// LocateInsertionPoint returns the index of the first line where the
	// block opened on lines[startIndex] closes, and whether such a line was
	// found before the end of the file.
	LocateInsertionPoint(lines []string, startIndex int) (int, bool)
}

// BraceDepthLocator is the default InsertionLocator. It seeds a depth
// counter at 1 on the declaration line and scans forward, counting every
// opening and closing brace occurrence per line; the target is the first
// line where the depth reaches 0.
//
// Known failure mode: braces inside string literals or comments are counted
// like any other, so the located line can be wrong for such content. This is
// an accepted limitation of the heuristic, not corrected by deeper lexical
// analysis.
type BraceDepthLocator struct{}

// LocateInsertionPoint implements InsertionLocator.
func (BraceDepthLocator) LocateInsertionPoint(lines []string, startIndex int) (int, bool) {
	depth := 1
	for i := startIndex + 1; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{")
		depth -= strings.Count(lines[i], "}")
		if depth <= 0 {
			return i, true
		}
	}
	return 0, false
}
