package engine

import (
	"math"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
)

// PathCommand represents a single path segment for rendering, already in
// canvas pixels.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"],
// ["A", cx, cy, r, start, end, anticlockwise],
// ["E", cx, cy, rx, ry, rotation, start, end, anticlockwise].
type PathCommand []any

// pointMarkSize is the half size in pixels of the cross drawn for points.
const pointMarkSize = 3

// recorder is a drawable.Renderer that converts primitives to canvas draw
// commands through the viewport transform.
type recorder struct {
	m     geom.Matrix2D
	scale float64

	layer    string
	objectID string
	// restyle, when set, replaces the style of every primitive.
	restyle func(drawable.Style) drawable.Style

	commands []DrawCommand
}

func newRecorder(v *Viewport) *recorder {
	return &recorder{m: v.Matrix(), scale: v.Scale}
}

func (r *recorder) screen(p geom.Point2D) (float64, float64) {
	s := p.Transform(r.m)
	return s.X, s.Y
}

func (r *recorder) style(s drawable.Style) drawable.Style {
	if r.restyle != nil {
		return r.restyle(s)
	}
	return s
}

func (r *recorder) stroke(path []PathCommand, s drawable.Style) {
	s = r.style(s)
	cmd := DrawCommand{
		Op:          "path",
		ObjectID:    r.objectID,
		Layer:       r.layer,
		Path:        path,
		Stroke:      document.FormatColor(s.Color),
		StrokeWidth: max(s.LineWidth, 1),
	}
	if s.Dashed {
		cmd.Dash = []float64{4, 4}
	}
	r.commands = append(r.commands, cmd)
}

func (r *recorder) Point(p geom.Point2D, s drawable.Style) {
	x, y := r.screen(p)
	r.stroke([]PathCommand{
		{"M", x - pointMarkSize, y}, {"L", x + pointMarkSize, y},
		{"M", x, y - pointMarkSize}, {"L", x, y + pointMarkSize},
	}, s)
}

func (r *recorder) Line(a, b geom.Point2D, s drawable.Style) {
	ax, ay := r.screen(a)
	bx, by := r.screen(b)
	r.stroke([]PathCommand{{"M", ax, ay}, {"L", bx, by}}, s)
}

// Arc flips the angles because the canvas y axis points down; the world
// counter-clockwise sweep becomes an anticlockwise canvas sweep of the
// negated angles.
func (r *recorder) Arc(c geom.Point2D, radius, start, end float64, s drawable.Style) {
	cx, cy := r.screen(c)
	sweep := geom.ClampAngle(end - start)
	if sweep == 0 {
		sweep = 2 * math.Pi
	}
	r.stroke([]PathCommand{{"A", cx, cy, radius * r.scale, -start, -(start + sweep), true}}, s)
}

func (r *recorder) Ellipse(c geom.Point2D, rx, ry, rotation float64, s drawable.Style) {
	cx, cy := r.screen(c)
	r.stroke([]PathCommand{{"E", cx, cy, rx * r.scale, ry * r.scale, -rotation, 0.0, 2 * math.Pi, false}}, s)
}

func (r *recorder) outline(pts []geom.Point2D, closed bool) []PathCommand {
	path := make([]PathCommand, 0, len(pts)+1)
	for i, p := range pts {
		x, y := r.screen(p)
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, x, y})
	}
	if closed && len(pts) > 2 {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

func (r *recorder) Polyline(pts []geom.Point2D, closed bool, s drawable.Style) {
	if len(pts) < 2 {
		return
	}
	r.stroke(r.outline(pts, closed), s)
}

func (r *recorder) Fill(pts []geom.Point2D, s drawable.Style) {
	if len(pts) < 3 {
		return
	}
	s = r.style(s)
	r.commands = append(r.commands, DrawCommand{
		Op:       "fill",
		ObjectID: r.objectID,
		Layer:    r.layer,
		Path:     r.outline(pts, true),
		Fill:     document.FormatColor(s.Color),
	})
}

func (r *recorder) Text(p geom.Point2D, text string, height, rotation float64, s drawable.Style) {
	s = r.style(s)
	x, y := r.screen(p)
	r.commands = append(r.commands, DrawCommand{
		Op:       "text",
		ObjectID: r.objectID,
		Layer:    r.layer,
		X:        x,
		Y:        y,
		Text:     text,
		FontSize: height * r.scale,
		Rotation: -rotation,
		Fill:     document.FormatColor(s.Color),
	})
}

// grip draws a filled square of size pixels centred on p.
func (r *recorder) grip(p geom.Point2D, size float64, c drawable.Style) {
	x, y := r.screen(p)
	h := size / 2
	r.commands = append(r.commands, DrawCommand{
		Op:       "fill",
		ObjectID: r.objectID,
		Layer:    r.layer,
		Path: []PathCommand{
			{"M", x - h, y - h}, {"L", x + h, y - h}, {"L", x + h, y + h}, {"L", x - h, y + h}, {"Z"},
		},
		Fill: document.FormatColor(c.Color),
	})
}
