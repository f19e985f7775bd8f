package reports

import (
	"errors"
	"fmt"
)

// DrillLevel is the depth of a hierarchical report view.
type DrillLevel int

const (
	Level1 DrillLevel = 1
	Level2 DrillLevel = 2
	Level3 DrillLevel = 3
)

// ErrDrillDepth is returned when a transition would leave the 1..3 range.
var ErrDrillDepth = errors.New("reports: drill level out of range")

// Crumb is one breadcrumb segment of the current drill path.
type Crumb struct {
	Level DrillLevel `json:"level"`
	Label string     `json:"label"`
}

// TableState is the search and page state local to one drill level.
type TableState struct {
	search string
	page   int
}

// SetSearch updates the search text, resetting the page to 1 on change.
func (s *TableState) SetSearch(q string) {
	if q == s.search {
		return
	}
	s.search = q
	s.page = 1
}

// SetPage moves to the requested page, clamping below 1.
func (s *TableState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// Reset clears search and page state.
func (s *TableState) Reset() {
	s.search = ""
	s.page = 1
}

// Search returns the current search text.
func (s *TableState) Search() string { return s.search }

// Page returns the current page, never below 1.
func (s *TableState) Page() int {
	if s.page < 1 {
		return 1
	}
	return s.page
}

type drillStep struct {
	label string
	keys  map[string]string
}

// Navigator holds the finite drill state of one hierarchical report: the
// current level, the parent keys accumulated on the way down, and each
// level's local table state. The only way back up is a breadcrumb jump,
// which discards every key belonging to deeper levels.
type Navigator struct {
	rootLabel string
	steps     []drillStep
	views     [3]TableState
}

// NewNavigator starts a navigator at level 1.
func NewNavigator(rootLabel string) *Navigator {
	n := &Navigator{rootLabel: rootLabel}
	for i := range n.views {
		n.views[i].Reset()
	}
	return n
}

// Level reports the current drill depth.
func (n *Navigator) Level() DrillLevel {
	return DrillLevel(len(n.steps) + 1)
}

// DrillDown descends one level, carrying the clicked entity's keys. The
// entered level's table state resets so no filter leaks across drill paths.
func (n *Navigator) DrillDown(label string, keys map[string]string) error {
	if n.Level() >= Level3 {
		return ErrDrillDepth
	}
	if len(keys) == 0 {
		return fmt.Errorf("reports: drill down requires parent keys")
	}
	copied := make(map[string]string, len(keys))
	for k, v := range keys {
		if v == "" {
			return fmt.Errorf("reports: drill key %q is empty", k)
		}
		copied[k] = v
	}
	n.steps = append(n.steps, drillStep{label: label, keys: copied})
	n.views[n.Level()-1].Reset()
	return nil
}

// JumpTo navigates to a shallower level via breadcrumb, discarding the keys
// and table state of every deeper level.
func (n *Navigator) JumpTo(level DrillLevel) error {
	if level < Level1 || level > n.Level() {
		return ErrDrillDepth
	}
	for l := level; l <= Level3; l++ {
		n.views[l-1].Reset()
	}
	n.steps = n.steps[:level-1]
	return nil
}

// Keys returns the parent keys accumulated up to the current level.
func (n *Navigator) Keys() map[string]string {
	merged := make(map[string]string)
	for _, step := range n.steps {
		for k, v := range step.keys {
			merged[k] = v
		}
	}
	return merged
}

// Key looks up a single accumulated parent key.
func (n *Navigator) Key(name string) (string, bool) {
	for i := len(n.steps) - 1; i >= 0; i-- {
		if v, ok := n.steps[i].keys[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Breadcrumbs renders the current drill path, root first.
func (n *Navigator) Breadcrumbs() []Crumb {
	crumbs := make([]Crumb, 0, len(n.steps)+1)
	crumbs = append(crumbs, Crumb{Level: Level1, Label: n.rootLabel})
	for i, step := range n.steps {
		crumbs = append(crumbs, Crumb{Level: DrillLevel(i + 2), Label: step.label})
	}
	return crumbs
}

// View exposes the table state local to the given level.
func (n *Navigator) View(level DrillLevel) *TableState {
	if level < Level1 || level > Level3 {
		return nil
	}
	return &n.views[level-1]
}

// Enabled reports whether the given level's query may fire: the navigator
// must sit exactly at that level, with every parent key present. A level-2
// query never fires while the navigator shows level 1.
func (n *Navigator) Enabled(level DrillLevel) bool {
	return n.Level() == level
}

// ActiveQuery builds the query for the current level: the base filters plus
// every parent key accumulated so far.
func (n *Navigator) ActiveQuery(report ReportID, base map[string]string) Query {
	filters := make(map[string]string, len(base)+len(n.steps)*2)
	for k, v := range base {
		filters[k] = v
	}
	for k, v := range n.Keys() {
		filters[k] = v
	}
	return NewQuery(report, filters)
}
