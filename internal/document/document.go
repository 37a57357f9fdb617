// Package document holds the scenes, settings and persistence of a drawing.
package document

import (
	"github.com/inamate/drafter/internal/typeid"
)

// Document is one open drawing. Model holds the persistent objects, Jigged
// the previews of the active command and Transients the overlay shapes such
// as the selection window.
type Document struct {
	ID       string
	Name     string
	Model    *Scene
	Jigged   *Scene
	Settings *Settings

	Transients *Scene
}

func New(name string) *Document {
	return &Document{
		ID:         typeid.NewSnapshotID(),
		Name:       name,
		Model:      NewScene("Model"),
		Jigged:     NewScene("Jigged"),
		Transients: NewScene("Transients"),
		Settings:   NewSettings(),
	}
}

// Layers returns the scenes in draw order.
func (d *Document) Layers() []*Scene {
	return []*Scene{d.Model, d.Jigged, d.Transients}
}
