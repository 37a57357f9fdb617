package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/geom"
)

func clearSelection(_ context.Context, ed *editor.Editor, _ []string) error {
	ed.PickedSelection.Clear()
	ed.CurrentSelection.Clear()
	return nil
}

// editGrip drags one control point. Args are the object id and the control
// point index; without them the grip nearest to a clicked point is used.
func editGrip(ctx context.Context, ed *editor.Editor, args []string) error {
	target, index, ok, err := gripTarget(ctx, ed, args)
	if err != nil || !ok {
		return err
	}
	cp := target.ControlPoints()[index]

	jigged := ed.Document().Jigged
	var shown drawable.Drawable
	defer func() {
		if shown != nil {
			jigged.Remove(shown)
		}
	}()
	show := func(p geom.Point2D) {
		if shown != nil {
			jigged.Remove(shown)
		}
		shown = target.Clone()
		shown.SetStyle(jigStyle(ed))
		cp.Apply(shown, p)
		jigged.Add(shown)
	}

	to, ok := gripInput(ctx, ed, cp, show)
	if !ok {
		return nil
	}
	cp.Apply(target, to)
	return nil
}

// gripInput requests the new grip location with the getter matching the
// control point kind.
func gripInput(ctx context.Context, ed *editor.Editor, cp drawable.ControlPoint, show func(geom.Point2D)) (geom.Point2D, bool) {
	msg := cp.Name
	dir := cp.Location.Sub(cp.BasePoint)
	radius := dir.Length()
	if dir.IsZero() {
		dir = geom.Vec(1, 0)
	}
	dir = dir.Normal()

	switch cp.Kind {
	case drawable.AngleControl:
		at := func(a float64) geom.Point2D { return cp.BasePoint.Add(geom.FromAngle(a).Scale(radius)) }
		opts := editor.NewJigOptions(msg, func(a float64) { show(at(a)) })
		opts.SetBasePoint(cp.BasePoint)
		res := ed.GetAngle(ctx, opts)
		return at(res.Value), res.IsAccepted()
	case drawable.DistanceControl:
		at := func(d float64) geom.Point2D { return cp.BasePoint.Add(dir.Scale(d)) }
		opts := editor.NewJigOptions(msg, func(d float64) { show(at(d)) })
		opts.SetBasePoint(cp.BasePoint)
		res := ed.GetDistance(ctx, opts)
		return at(res.Value), res.IsAccepted()
	}
	opts := editor.NewJigOptions(msg, show)
	opts.SetBasePoint(cp.BasePoint)
	res := ed.GetPoint(ctx, opts)
	return res.Value, res.IsAccepted()
}

func gripTarget(ctx context.Context, ed *editor.Editor, args []string) (drawable.Drawable, int, bool, error) {
	model := ed.Document().Model
	if len(args) >= 2 {
		d := model.Find(args[0])
		if d == nil {
			return nil, 0, false, fmt.Errorf("object %s not found", args[0])
		}
		i, err := strconv.Atoi(args[1])
		if err != nil || i < 0 || i >= len(d.ControlPoints()) {
			return nil, 0, false, fmt.Errorf("object %s has no control point %q", args[0], args[1])
		}
		return d, i, true, nil
	}

	for {
		res := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("Select control point", nil))
		if !res.IsAccepted() {
			return nil, 0, false, nil
		}
		if d, i, found := nearestGrip(model.Items(), res.Value, ed.PickTolerance()); found {
			return d, i, true, nil
		}
	}
}

func nearestGrip(items []drawable.Drawable, p geom.Point2D, tol float64) (drawable.Drawable, int, bool) {
	var best drawable.Drawable
	bestIndex, bestDist := 0, tol
	for _, d := range items {
		for i, cp := range d.ControlPoints() {
			if dist := cp.Location.DistanceTo(p); dist <= bestDist {
				best, bestIndex, bestDist = d, i, dist
			}
		}
	}
	return best, bestIndex, best != nil
}

var editCommands = []editor.Descriptor{
	{Name: "Selection.Clear", DisplayName: "Clear Selection", New: func() editor.Command { return editor.CommandFunc(clearSelection) }},
	{Name: "Edit.Grip", DisplayName: "Edit Control Point", New: func() editor.Command { return editor.CommandFunc(editGrip) }},
}
