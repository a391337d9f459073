package services

import "sync"

// Auto-expansion policy for budget detail lines. A line defaults to
// collapsed; once its effective utilization crosses 100% it auto-expands and
// stays expanded. A manual toggle pins the line for the rest of the session,
// after which the automatic rule leaves it alone.

type lineState struct {
	expanded bool
	pinned   bool
}

// ExpansionState tracks per-line expansion for the currently viewed month.
// Keys are budget categories. One instance is shared by every request for a
// household, so all access goes through the mutex.
type ExpansionState struct {
	mu    sync.Mutex
	lines map[string]lineState
}

func NewExpansionState() *ExpansionState {
	return &ExpansionState{lines: make(map[string]lineState)}
}

// Recompute runs the automatic rule over the month's budget lines. Lines
// over 100% effective utilization expand; nothing ever auto-collapses, and
// pinned lines are skipped entirely.
func (s *ExpansionState) Recompute(lines []*EffectiveProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		if line == nil {
			continue
		}
		state := s.lines[line.Category]
		if state.pinned {
			continue
		}
		if line.EffectivePercentage > 100 {
			state.expanded = true
			s.lines[line.Category] = state
		}
	}
}

// Toggle flips a line by explicit user action and pins it against the
// automatic rule for the remainder of the session.
func (s *ExpansionState) Toggle(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.lines[category]
	state.expanded = !state.expanded
	state.pinned = true
	s.lines[category] = state
}

// IsExpanded reports the line's current display state.
func (s *ExpansionState) IsExpanded(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[category].expanded
}

// IsPinned reports whether the user has manually overridden the line.
func (s *ExpansionState) IsPinned(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[category].pinned
}
