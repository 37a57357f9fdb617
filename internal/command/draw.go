package command

import (
	"context"
	"errors"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/geom"
)

func drawPoint(ctx context.Context, ed *editor.Editor, _ []string) error {
	for {
		res := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("Location", nil))
		if !res.IsAccepted() {
			return nil
		}
		ed.Document().Model.Add(drawable.NewPoint(res.Value))
	}
}

// drawLine adds segments from each accepted point to the next until the
// user cancels. "Close" joins the last point back to the first.
func drawLine(ctx context.Context, ed *editor.Editor, _ []string) error {
	first := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("First point", nil))
	if !first.IsAccepted() {
		return nil
	}
	model := ed.Document().Model
	start, last := first.Value, first.Value
	segments := 0
	for {
		opts := editor.NewJigOptions[geom.Point2D]("Next point", nil)
		opts.SetBasePoint(last)
		if segments >= 2 {
			opts.AddKeyword("Close", false)
		}
		res := ed.GetPoint(ctx, opts)
		switch {
		case res.IsKeyword() && res.Keyword == "Close":
			model.Add(drawable.NewLine(last, start))
			return nil
		case !res.IsAccepted():
			return nil
		}
		model.Add(drawable.NewLine(last, res.Value))
		last = res.Value
		segments++
	}
}

func drawCircle(ctx context.Context, ed *editor.Editor, _ []string) error {
	center := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("Center point", nil))
	if !center.IsAccepted() {
		return nil
	}

	shape := drawable.NewCircle(center.Value, 0)
	shape.SetStyle(jigStyle(ed))
	jigged := ed.Document().Jigged
	jigged.Add(shape)
	defer jigged.Remove(shape)

	opts := editor.NewJigOptions("Radius", func(r float64) { shape.Radius = r })
	opts.SetBasePoint(center.Value)
	radius := ed.GetDistance(ctx, opts)
	if !radius.IsAccepted() {
		return nil
	}
	if radius.Value == 0 {
		return errors.New("circle radius must be positive")
	}
	ed.Document().Model.Add(drawable.NewCircle(center.Value, radius.Value))
	return nil
}

func drawRectangle(ctx context.Context, ed *editor.Editor, _ []string) error {
	first := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("First corner", nil))
	if !first.IsAccepted() {
		return nil
	}
	opts := editor.NewJigOptions[geom.Point2D]("Opposite corner", nil)
	opts.SetBasePoint(first.Value)
	second := ed.GetCorner(ctx, opts)
	if !second.IsAccepted() {
		return nil
	}
	corners := geom.ExtentsOf(first.Value, second.Value).Corners()
	ed.Document().Model.Add(drawable.NewPolygon(corners[:]...))
	return nil
}

func drawText(ctx context.Context, ed *editor.Editor, args []string) error {
	at := ed.GetPoint(ctx, editor.NewJigOptions[geom.Point2D]("Insertion point", nil))
	if !at.IsAccepted() {
		return nil
	}

	hopts := editor.NewJigOptions[float64]("Text height", nil)
	hopts.SetBasePoint(at.Value)
	height := ed.GetDistance(ctx, hopts)
	if !height.IsAccepted() || height.Value == 0 {
		return nil
	}

	var content string
	if len(args) > 0 {
		content = args[0]
	} else {
		res := ed.GetText(ctx, editor.NewOptions("Text string"))
		if !res.IsAccepted() {
			return nil
		}
		content = res.Value
	}
	ed.Document().Model.Add(drawable.NewText(at.Value, content, height.Value))
	return nil
}

var drawCommands = []editor.Descriptor{
	{Name: "Draw.Point", DisplayName: "Point", New: func() editor.Command { return editor.CommandFunc(drawPoint) }},
	{Name: "Draw.Line", DisplayName: "Line", New: func() editor.Command { return editor.CommandFunc(drawLine) }},
	{Name: "Draw.Circle", DisplayName: "Circle", New: func() editor.Command { return editor.CommandFunc(drawCircle) }},
	{Name: "Draw.Rectangle", DisplayName: "Rectangle", New: func() editor.Command { return editor.CommandFunc(drawRectangle) }},
	{Name: "Draw.Text", DisplayName: "Text", New: func() editor.Command { return editor.CommandFunc(drawText) }},
}
