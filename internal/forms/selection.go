package forms

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Selection is an ordered set of selected transaction IDs for bulk actions.
type Selection struct {
	ids   []uuid.UUID
	index map[uuid.UUID]int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{index: make(map[uuid.UUID]int)}
}

// Toggle adds id if absent or removes it if present, and reports whether id
// is selected afterwards.
func (s *Selection) Toggle(id uuid.UUID) bool {
	if s.index == nil {
		s.index = make(map[uuid.UUID]int)
	}
	if i, ok := s.index[id]; ok {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		delete(s.index, id)
		for j := i; j < len(s.ids); j++ {
			s.index[s.ids[j]] = j
		}
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id uuid.UUID) bool {
	_, ok := s.index[id]
	return ok
}

// SelectAll replaces the selection with ids, dropping duplicates.
func (s *Selection) SelectAll(ids []uuid.UUID) {
	s.Clear()
	for _, id := range ids {
		if !s.Contains(id) {
			s.Toggle(id)
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
	s.index = make(map[uuid.UUID]int)
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected IDs in selection order.
func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Generation hands out increasing tokens so a caller can discard the
// result of a request that has since been superseded.
type Generation struct {
	n atomic.Uint64
}

// Next starts a new request and returns its token.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// IsCurrent reports whether token belongs to the latest request.
func (g *Generation) IsCurrent(token uint64) bool {
	return g.n.Load() == token
}
