package drawable

import "github.com/inamate/drafter/internal/geom"

// ControlPointKind selects the input used to drag a control point.
type ControlPointKind int

const (
	// PointControl is dragged to a new location.
	PointControl ControlPointKind = iota
	// AngleControl is set by the angle from BasePoint.
	AngleControl
	// DistanceControl is set by the distance from BasePoint.
	DistanceControl
)

func (k ControlPointKind) String() string {
	switch k {
	case AngleControl:
		return "angle"
	case DistanceControl:
		return "distance"
	}
	return "point"
}

// ControlPoint describes one grip of a drawable. Apply edits the grip on a
// drawable of the same concrete type, so it can run on a preview clone as
// well as on the original.
type ControlPoint struct {
	Name      string
	Kind      ControlPointKind
	BasePoint geom.Point2D
	Location  geom.Point2D
	apply     func(d Drawable, p geom.Point2D)
}

// Apply moves the grip to p on target.
func (cp ControlPoint) Apply(target Drawable, p geom.Point2D) {
	if cp.apply != nil {
		cp.apply(target, p)
	}
}

// moveControl is the grip that translates the whole object.
func moveControl(name string, at geom.Point2D) ControlPoint {
	return ControlPoint{
		Name:      name,
		Kind:      PointControl,
		BasePoint: at,
		Location:  at,
		apply: func(d Drawable, p geom.Point2D) {
			d.TransformBy(geom.Translation(p.Sub(at)))
		},
	}
}
