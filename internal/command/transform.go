package command

import (
	"context"
	"fmt"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/geom"
)

// secondInput requests the value that completes a transform and returns the
// transform for it. jig receives the live transform.
type secondInput func(ctx context.Context, ed *editor.Editor, base geom.Point2D, jig func(geom.Matrix2D)) (geom.Matrix2D, bool)

// transform is the shared flow of Move, Copy, Rotate, Scale and Mirror:
// selection, base point, then a jigged second input and one final
// transform.
type transform struct {
	second secondInput
	// clone inserts transformed copies instead of moving the selection.
	clone bool
	// repeat asks for further second inputs until cancelled.
	repeat bool
}

func (t *transform) Apply(ctx context.Context, ed *editor.Editor, _ []string) error {
	sel := ed.GetSelection(ctx, editor.NewOptions("Select objects"))
	if !sel.IsAccepted() || sel.Value.IsEmpty() {
		return nil
	}
	items := sel.Value.Items()

	base := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("Base point", nil))
	if !base.IsAccepted() {
		return nil
	}

	for {
		m, ok := t.next(ctx, ed, items, base.Value)
		if !ok {
			return nil
		}
		if t.clone {
			model := ed.Document().Model
			for _, d := range items {
				c := d.Clone()
				c.TransformBy(m)
				model.Add(c)
			}
		} else {
			for _, d := range items {
				d.TransformBy(m)
			}
		}
		ed.Logger().Debug("transform applied", "objects", len(items), "copy", t.clone)
		if !t.repeat {
			return nil
		}
	}
}

func (t *transform) next(ctx context.Context, ed *editor.Editor, items []drawable.Drawable, base geom.Point2D) (geom.Matrix2D, bool) {
	p := newPreview(ed, items)
	defer p.remove()
	return t.second(ctx, ed, base, p.jig)
}

func translateInput(ctx context.Context, ed *editor.Editor, base geom.Point2D, jig func(geom.Matrix2D)) (geom.Matrix2D, bool) {
	opts := editor.NewJigOptions("Second point", func(p geom.Point2D) {
		jig(geom.Translation(p.Sub(base)))
	})
	opts.SetBasePoint(base)
	res := ed.GetPoint(ctx, opts)
	if !res.IsAccepted() {
		return geom.Matrix2D{}, false
	}
	return geom.Translation(res.Value.Sub(base)), true
}

func rotateInput(ctx context.Context, ed *editor.Editor, base geom.Point2D, jig func(geom.Matrix2D)) (geom.Matrix2D, bool) {
	opts := editor.NewJigOptions("Rotation angle", func(a float64) {
		jig(geom.RotationAt(base, a))
	})
	opts.SetBasePoint(base)
	res := ed.GetAngle(ctx, opts)
	if !res.IsAccepted() {
		return geom.Matrix2D{}, false
	}
	return geom.RotationAt(base, res.Value), true
}

func scaleInput(ctx context.Context, ed *editor.Editor, base geom.Point2D, jig func(geom.Matrix2D)) (geom.Matrix2D, bool) {
	opts := editor.NewJigOptions("Scale", func(f float64) {
		jig(geom.ScalingAt(base, f))
	})
	opts.SetBasePoint(base)
	opts.Validate = func(f float64) error {
		if f == 0 {
			return fmt.Errorf("%w: scale factor must not be zero", editor.ErrInvalidInput)
		}
		return nil
	}
	res := ed.GetDistance(ctx, opts)
	if !res.IsAccepted() {
		return geom.Matrix2D{}, false
	}
	return geom.ScalingAt(base, res.Value), true
}

func mirrorInput(ctx context.Context, ed *editor.Editor, base geom.Point2D, jig func(geom.Matrix2D)) (geom.Matrix2D, bool) {
	opts := editor.NewJigOptions("Second point of mirror line", func(p geom.Point2D) {
		jig(geom.Mirroring(base, p.Sub(base)))
	})
	opts.SetBasePoint(base)
	opts.Validate = func(p geom.Point2D) error {
		if p.Sub(base).IsZero() {
			return fmt.Errorf("%w: mirror line has no length", editor.ErrInvalidInput)
		}
		return nil
	}
	res := ed.GetPoint(ctx, opts)
	if !res.IsAccepted() {
		return geom.Matrix2D{}, false
	}
	return geom.Mirroring(base, res.Value.Sub(base)), true
}

var transformCommands = []editor.Descriptor{
	transformDescriptor("Transform.Move", "Move", &transform{second: translateInput}),
	transformDescriptor("Transform.Copy", "Copy", &transform{second: translateInput, clone: true, repeat: true}),
	transformDescriptor("Transform.Rotate", "Rotate", &transform{second: rotateInput}),
	transformDescriptor("Transform.Scale", "Scale", &transform{second: scaleInput}),
	transformDescriptor("Transform.Mirror", "Mirror", &transform{second: mirrorInput, clone: true}),
}

func transformDescriptor(name, display string, proto *transform) editor.Descriptor {
	return editor.Descriptor{
		Name:        name,
		DisplayName: display,
		New: func() editor.Command {
			t := *proto
			return &t
		},
	}
}
