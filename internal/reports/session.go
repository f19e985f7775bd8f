package reports

import "sync"

// Session tracks the single active query of one report view and applies only
// the response that matches it. A response arriving for a superseded key is
// discarded, so the most recently issued query always wins regardless of
// resolution order.
type Session struct {
	mu        sync.Mutex
	activeKey string
	loading   bool
	data      any
}

// Begin marks the query as active and enters the loading state. Data from a
// previous key is cleared immediately so the view renders its skeleton.
func (s *Session) Begin(q Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeKey = q.Key()
	s.loading = true
	s.data = nil
}

// Resolve applies a fetched payload if its query is still the active one.
// It reports whether the payload was applied.
func (s *Session) Resolve(q Query, payload any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Key() != s.activeKey {
		return false
	}
	s.loading = false
	s.data = payload
	return true
}

// Fail ends the loading state for the active query without data, leaving the
// view in its empty state. Failures for superseded keys are ignored.
func (s *Session) Fail(q Query) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Key() != s.activeKey {
		return false
	}
	s.loading = false
	s.data = nil
	return true
}

// Snapshot returns the current data and loading flag. Data is nil while
// loading and after a failed fetch.
func (s *Session) Snapshot() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.loading
}
