package command

import (
	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/geom"
)

// preview is a group of clones shown in the jig layer while a command
// waits for its second input.
type preview struct {
	scene *document.Scene
	items []drawable.Drawable
	last  geom.Matrix2D
}

func newPreview(ed *editor.Editor, items []drawable.Drawable) *preview {
	style := jigStyle(ed)
	p := &preview{scene: ed.Document().Jigged, last: geom.Identity()}
	for _, d := range items {
		c := d.Clone()
		c.SetStyle(style)
		p.items = append(p.items, c)
	}
	p.scene.Add(p.items...)
	return p
}

// jig moves the clones from the previous jig transform to m by applying
// only the difference. Singular transforms are skipped.
func (p *preview) jig(m geom.Matrix2D) {
	if !m.IsInvertible() {
		return
	}
	delta := m.Multiply(p.last.Invert())
	for _, d := range p.items {
		d.TransformBy(delta)
	}
	p.last = m
}

func (p *preview) remove() {
	for _, d := range p.items {
		p.scene.Remove(d)
	}
}

func jigStyle(ed *editor.Editor) drawable.Style {
	return drawable.Style{Color: ed.Document().Settings.Color(document.SettingJigColor), LineWidth: 1}
}
