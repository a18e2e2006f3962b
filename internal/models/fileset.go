package models

import "sort"

// FileSet is a mapping from relative file path to text content, as produced
// by the generative producer. The conformance post-processor rewrites values
// in place; every key present on input remains present on output.
type FileSet map[string]string

// Paths returns the file paths in sorted order.
func (fs FileSet) Paths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
