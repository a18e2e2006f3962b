package models

// ScenarioGroup is the set of test cases sharing one exact scenario title.
// Groups are created on the first row belonging to a title and mutated only
// by appending tests in row-encounter order.
type ScenarioGroup struct {
	Index            int        // Stable opaque identifier, assigned at creation
	IdentifierName   string     // camelCase form of ScenarioTitle
	ScenarioTitle    string     // Exact, case-preserved title from the source rows
	ShortFeatureName string     // Lossy file-safe key; group identity and file base name
	Tests            []TestCase // Row order preserved
}

// GroupSet holds scenario groups in creation order and exposes a lookup view
// keyed by short feature name. Both views reflect the same underlying groups.
type GroupSet struct {
	ordered []*ScenarioGroup
	byShort map[string]*ScenarioGroup
}

// NewGroupSet creates an empty GroupSet.
func NewGroupSet() *GroupSet {
	return &GroupSet{byShort: make(map[string]*ScenarioGroup)}
}

// Add appends a group to the ordered view and registers it in the lookup
// view. The group's Index is assigned from its position.
func (s *GroupSet) Add(g *ScenarioGroup) {
	g.Index = len(s.ordered)
	s.ordered = append(s.ordered, g)
	s.byShort[g.ShortFeatureName] = g
}

// Get returns the group with the given short feature name, if any.
func (s *GroupSet) Get(shortName string) (*ScenarioGroup, bool) {
	g, ok := s.byShort[shortName]
	return g, ok
}

// Ordered returns the groups in creation order. The returned slice shares
// the underlying groups; callers must not reorder it.
func (s *GroupSet) Ordered() []*ScenarioGroup {
	return s.ordered
}

// Len returns the number of groups.
func (s *GroupSet) Len() int {
	return len(s.ordered)
}

// TotalTests returns the number of test cases across all groups.
func (s *GroupSet) TotalTests() int {
	n := 0
	for _, g := range s.ordered {
		n += len(g.Tests)
	}
	return n
}

// MergeSuggested appends suggested test cases to the group with the given
// short feature name, skipping any case whose ID or Title already exists in
// the group. Returns the number of cases actually appended. Missing group
// is a no-op returning 0.
func (s *GroupSet) MergeSuggested(shortName string, cases []TestCase) int {
	g, ok := s.byShort[shortName]
	if !ok {
		return 0
	}

	seenID := make(map[string]bool, len(g.Tests))
	seenTitle := make(map[string]bool, len(g.Tests))
	for _, tc := range g.Tests {
		if tc.ID != "" {
			seenID[tc.ID] = true
		}
		if tc.Title != "" {
			seenTitle[tc.Title] = true
		}
	}

	added := 0
	for _, tc := range cases {
		if (tc.ID != "" && seenID[tc.ID]) || (tc.Title != "" && seenTitle[tc.Title]) {
			continue
		}
		g.Tests = append(g.Tests, tc)
		if tc.ID != "" {
			seenID[tc.ID] = true
		}
		if tc.Title != "" {
			seenTitle[tc.Title] = true
		}
		added++
	}
	return added
}
