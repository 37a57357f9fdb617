package drawable

import (
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/inamate/drafter/internal/geom"
)

// metricsSize is the face size used for measuring; widths scale linearly
// with the text height.
const metricsSize = 100

var (
	metricsOnce sync.Once
	metricsFace font.Face
)

func loadMetricsFace() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Error("failed to parse text metrics font", "error", err)
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: metricsSize, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		slog.Error("failed to create text metrics face", "error", err)
		return
	}
	metricsFace = face
}

// TextWidth returns the advance width of s in world units when drawn with
// the given cap height.
func TextWidth(s string, height float64) float64 {
	metricsOnce.Do(loadMetricsFace)
	if metricsFace == nil {
		return 0.6 * height * float64(len([]rune(s)))
	}
	adv := font.MeasureString(metricsFace, s)
	return float64(adv) / 64 * height / metricsSize
}

// Text is a single line anchored at its baseline start.
type Text struct {
	Base
	Position geom.Point2D
	Content  string
	Height   float64
	Rotation float64
}

func NewText(p geom.Point2D, content string, height float64) *Text {
	return &Text{Base: newBase(), Position: p, Content: content, Height: height}
}

func (t *Text) Kind() string { return "text" }

func (t *Text) Draw(r Renderer) {
	r.Text(t.Position, t.Content, t.Height, t.Rotation, t.style)
}

// local maps text-local coordinates (x along the baseline) to world.
func (t *Text) local() geom.Matrix2D {
	return geom.Translation(t.Position.AsVector()).Multiply(geom.Rotation(t.Rotation))
}

func (t *Text) box() geom.Extents2D {
	return geom.ExtentsOf(geom.Pt(0, 0), geom.Pt(TextWidth(t.Content, t.Height), t.Height))
}

func (t *Text) Extents() geom.Extents2D {
	return t.local().TransformExtents(t.box())
}

func (t *Text) Contains(pt geom.Point2D, tol float64) bool {
	q := pt.Transform(t.local().Invert())
	return t.box().Expand(tol).ContainsPoint(q)
}

func (t *Text) TransformBy(m geom.Matrix2D) {
	dir := geom.FromAngle(t.Rotation).Transform(m)
	t.Position = t.Position.Transform(m)
	t.Height *= scaleFactor(m)
	t.Rotation = dir.Angle()
}

func (t *Text) Clone() Drawable {
	c := *t
	c.Base = t.cloneBase()
	return &c
}

func (t *Text) ControlPoints() []ControlPoint {
	return []ControlPoint{
		moveControl("Position", t.Position),
		{
			Name: "Rotation", Kind: AngleControl, BasePoint: t.Position,
			Location: t.Position.Add(geom.FromAngle(t.Rotation).Scale(TextWidth(t.Content, t.Height))),
			apply: func(d Drawable, p geom.Point2D) {
				tt := d.(*Text)
				tt.Rotation = p.Sub(tt.Position).Angle()
			},
		},
		{
			Name: "Height", Kind: DistanceControl, BasePoint: t.Position,
			Location: t.Position.Add(geom.FromAngle(t.Rotation).Perpendicular().Scale(t.Height)),
			apply: func(d Drawable, p geom.Point2D) {
				tt := d.(*Text)
				tt.Height = tt.Position.DistanceTo(p)
			},
		},
	}
}
