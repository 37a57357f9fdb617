package editor

import (
	"context"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
	"github.com/inamate/drafter/internal/selection"
)

// selectionWindow is the rubber band drawn between the two corner clicks.
type selectionWindow struct {
	anchor geom.Point2D
	fill   *drawable.Hatch
	border *drawable.Polyline
}

// isWindow reports window mode: dragging right selects only objects fully
// inside, dragging left selects everything crossed.
func isWindow(anchor, corner geom.Point2D) bool {
	return corner.X > anchor.X
}

func (w *selectionWindow) update(s *document.Settings, corner geom.Point2D) {
	corners := geom.ExtentsOf(w.anchor, corner).Corners()
	copy(w.fill.Points, corners[:])
	copy(w.border.Points, corners[:])

	if isWindow(w.anchor, corner) {
		w.fill.SetStyle(drawable.Style{Color: s.Color(document.SettingSelectionWindowColor)})
		w.border.SetStyle(drawable.Style{Color: s.Color(document.SettingSelectionWindowBorderColor), LineWidth: 1})
	} else {
		w.fill.SetStyle(drawable.Style{Color: s.Color(document.SettingReverseSelectionWindowColor)})
		w.border.SetStyle(drawable.Style{Color: s.Color(document.SettingReverseSelectionWindowBorderColor), LineWidth: 1, Dashed: true})
	}
}

// SelectInWindow tests every model object once against the box spanned by
// anchor and corner.
func SelectInWindow(model *document.Scene, anchor, corner geom.Point2D) *selection.Set {
	box := geom.ExtentsOf(anchor, corner)
	window := isWindow(anchor, corner)
	set := selection.New()
	for _, d := range model.Items() {
		if !d.Visible() {
			continue
		}
		e := d.Extents()
		if (window && box.Contains(e)) || (!window && box.Intersects(e)) {
			set.Add(d)
		}
	}
	return set
}

// GetSelectionWindow requests one selection window. A non-empty picked
// selection is returned right away.
func (ed *Editor) GetSelectionWindow(ctx context.Context, opts *Options) InputResult[*selection.Set] {
	var win *selectionWindow
	return runGetter(ctx, ed, getterSpec[*selection.Set]{
		opts:         opts,
		spaceAccepts: true,
		init: func(g *getterRun[*selection.Set]) bool {
			if ed.PickedSelection.IsEmpty() {
				return false
			}
			g.finish(accepted(selection.New(ed.PickedSelection.Items()...), ReasonInit))
			return true
		},
		coords: func(g *getterRun[*selection.Set], p geom.Point2D) (*selection.Set, bool, error) {
			if win == nil {
				win = &selectionWindow{
					anchor: p,
					fill:   drawable.NewHatch(p, p, p, p),
					border: drawable.NewPolygon(p, p, p, p),
				}
				win.update(g.settings(), p)
				g.attach(ed.doc.Transients, win.fill)
				g.attach(ed.doc.Transients, win.border)
				return nil, false, nil
			}
			return SelectInWindow(ed.doc.Model, win.anchor, p), true, nil
		},
		track: func(g *getterRun[*selection.Set], p geom.Point2D) (*selection.Set, bool) {
			if win != nil {
				win.update(g.settings(), p)
			}
			return nil, false
		},
	})
}

// GetSelection collects objects with repeated selection windows, adding each
// result to the current selection, until Enter or Space accepts the
// collection. A non-empty picked selection is returned right away.
func (ed *Editor) GetSelection(ctx context.Context, opts *Options) InputResult[*selection.Set] {
	if !ed.PickedSelection.IsEmpty() && !ed.closed && ed.running {
		picked := ed.PickedSelection.Items()
		ed.CurrentSelection.Reset(picked)
		return accepted(selection.New(picked...), ReasonInit)
	}

	for {
		res := ed.GetSelectionWindow(ctx, opts)
		switch {
		case res.IsAccepted():
			ed.CurrentSelection.AddRange(res.Value.Items())
		case res.IsKeyword():
			return res
		case res.Reason == ReasonEnter || res.Reason == ReasonSpace:
			if ed.CurrentSelection.IsEmpty() {
				return res
			}
			return accepted(selection.New(ed.CurrentSelection.Items()...), res.Reason)
		default:
			return res
		}
	}
}
