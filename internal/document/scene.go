package document

import (
	"slices"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/evreg"
)

// Scene notification ids, registered on Scene.Events.
const (
	SceneAddedEvId = iota
	SceneRemovedEvId
	SceneClearedEvId
)

// SceneEvent is passed to Scene.Events callbacks.
type SceneEvent struct {
	Scene *Scene
	Items []drawable.Drawable
}

// Scene is an ordered layer of drawables. Items are attached at most once;
// adding an item already present is a no-op.
type Scene struct {
	Name   string
	Events evreg.Register

	items []drawable.Drawable
}

func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// Add appends the items not yet in the scene.
func (s *Scene) Add(items ...drawable.Drawable) {
	added := make([]drawable.Drawable, 0, len(items))
	for _, d := range items {
		if d == nil || s.Contains(d) {
			continue
		}
		s.items = append(s.items, d)
		added = append(added, d)
	}
	if len(added) > 0 {
		s.Events.RunCallbacks(SceneAddedEvId, &SceneEvent{Scene: s, Items: added})
	}
}

// Remove detaches d and reports whether it was attached.
func (s *Scene) Remove(d drawable.Drawable) bool {
	i := slices.Index(s.items, d)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.Events.RunCallbacks(SceneRemovedEvId, &SceneEvent{Scene: s, Items: []drawable.Drawable{d}})
	return true
}

func (s *Scene) Contains(d drawable.Drawable) bool {
	return slices.Contains(s.items, d)
}

// Items returns the drawables in draw order.
func (s *Scene) Items() []drawable.Drawable {
	return slices.Clone(s.items)
}

func (s *Scene) Len() int {
	return len(s.items)
}

// Find returns the item with the given id, or nil.
func (s *Scene) Find(id string) drawable.Drawable {
	for _, d := range s.items {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

func (s *Scene) Clear() {
	if len(s.items) == 0 {
		return
	}
	old := s.items
	s.items = nil
	s.Events.RunCallbacks(SceneClearedEvId, &SceneEvent{Scene: s, Items: old})
}
