package document

import (
	"math"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
	"golang.org/x/image/colornames"
)

// NewSampleDocument returns a small drawing with one of each object kind,
// used by the playground.
func NewSampleDocument() *Document {
	doc := New("Sample")

	frame := drawable.NewPolygon(geom.Pt(0, 0), geom.Pt(200, 0), geom.Pt(200, 120), geom.Pt(0, 120))

	diagonal := drawable.NewLine(geom.Pt(10, 10), geom.Pt(90, 60))
	diagonal.SetStyle(drawable.Style{Color: colornames.Lightskyblue, LineWidth: 1})

	wheel := drawable.NewCircle(geom.Pt(140, 40), 20)
	wheel.SetStyle(drawable.Style{Color: colornames.Gold, LineWidth: 2})

	arc := drawable.NewArc(geom.Pt(140, 40), 28, 0, math.Pi*3/4)

	oval := drawable.NewEllipse(geom.Pt(60, 90), 30, 12, math.Pi/8)
	oval.SetStyle(drawable.Style{Color: colornames.Lightgreen, LineWidth: 1})

	fill := drawable.NewHatch(geom.Pt(120, 80), geom.Pt(180, 80), geom.Pt(150, 110))
	fill.SetStyle(drawable.Style{Color: colornames.Indianred, LineWidth: 1})

	label := drawable.NewText(geom.Pt(10, 104), "drafter", 8)

	marker := drawable.NewComposite(
		drawable.NewLine(geom.Pt(95, 5), geom.Pt(105, 15)),
		drawable.NewLine(geom.Pt(95, 15), geom.Pt(105, 5)),
		drawable.NewPoint(geom.Pt(100, 10)),
	)

	doc.Model.Add(frame, diagonal, wheel, arc, oval, fill, label, marker)
	return doc
}
