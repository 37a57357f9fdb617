// Package selection implements the identity-based set of selected objects.
package selection

import (
	"slices"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/evreg"
)

// Notification ids, registered on Set.Events.
const (
	AddedEvId = iota
	RemovedEvId
	ResetEvId
)

// ChangeEvent is passed to Set.Events callbacks.
type ChangeEvent struct {
	Items []drawable.Drawable
}

// Set holds non-owning references to model objects, in insertion order and
// without duplicates. The zero value is an empty set.
type Set struct {
	Events evreg.Register

	items []drawable.Drawable
}

func New(items ...drawable.Drawable) *Set {
	s := &Set{}
	s.AddRange(items)
	return s
}

func (s *Set) Len() int { return len(s.items) }

func (s *Set) IsEmpty() bool { return len(s.items) == 0 }

func (s *Set) Contains(d drawable.Drawable) bool {
	return slices.Contains(s.items, d)
}

// Items returns the selected objects in insertion order.
func (s *Set) Items() []drawable.Drawable {
	return slices.Clone(s.items)
}

// Add inserts d and reports whether it was not already present.
func (s *Set) Add(d drawable.Drawable) bool {
	if d == nil || s.Contains(d) {
		return false
	}
	s.items = append(s.items, d)
	s.Events.RunCallbacks(AddedEvId, &ChangeEvent{Items: []drawable.Drawable{d}})
	return true
}

// AddRange inserts every item not already present and notifies once.
func (s *Set) AddRange(items []drawable.Drawable) {
	var added []drawable.Drawable
	for _, d := range items {
		if d == nil || s.Contains(d) || slices.Contains(added, d) {
			continue
		}
		added = append(added, d)
	}
	if len(added) == 0 {
		return
	}
	s.items = append(s.items, added...)
	s.Events.RunCallbacks(AddedEvId, &ChangeEvent{Items: added})
}

func (s *Set) Remove(d drawable.Drawable) bool {
	i := slices.Index(s.items, d)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.Events.RunCallbacks(RemovedEvId, &ChangeEvent{Items: []drawable.Drawable{d}})
	return true
}

// Toggle removes d when selected and adds it otherwise.
func (s *Set) Toggle(d drawable.Drawable) {
	if !s.Remove(d) {
		s.Add(d)
	}
}

// Clear empties the set. Callbacks see the removed items.
func (s *Set) Clear() {
	if len(s.items) == 0 {
		return
	}
	old := s.items
	s.items = nil
	s.Events.RunCallbacks(ResetEvId, &ChangeEvent{Items: old})
}

// Reset replaces the contents with items.
func (s *Set) Reset(items []drawable.Drawable) {
	s.items = nil
	for _, d := range items {
		if d != nil && !slices.Contains(s.items, d) {
			s.items = append(s.items, d)
		}
	}
	s.Events.RunCallbacks(ResetEvId, &ChangeEvent{Items: s.Items()})
}
