package editor

import (
	"context"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
)

func (ed *Editor) jigStyle() drawable.Style {
	return drawable.Style{Color: ed.doc.Settings.Color(document.SettingJigColor), LineWidth: 1}
}

// rubberBand keeps a line from the base point to the cursor while a getter
// waits. The line is created on first use.
type rubberBand struct {
	line *drawable.Line
}

func (rb *rubberBand) update(ed *Editor, attach func(*document.Scene, drawable.Drawable), base, p geom.Point2D) {
	if rb.line == nil {
		rb.line = drawable.NewLine(base, p)
		rb.line.SetStyle(ed.jigStyle())
		attach(ed.doc.Jigged, rb.line)
		return
	}
	rb.line.B = p
}

func basePointer(o *Options) *geom.Point2D {
	if !o.HasBasePoint {
		return nil
	}
	p := o.BasePoint
	return &p
}

// GetPoint requests a location by click or typed "x,y". With a base point a
// rubber-band line follows the cursor and "@dx,dy" is relative to it;
// without one "@dx,dy" is relative to the last accepted point.
func (ed *Editor) GetPoint(ctx context.Context, opts *JigOptions[geom.Point2D]) InputResult[geom.Point2D] {
	base := basePointer(&opts.Options)
	relTo := base
	if relTo == nil {
		relTo = ed.lastPoint
	}
	var band rubberBand
	res := runGetter(ctx, ed, getterSpec[geom.Point2D]{
		opts:         &opts.Options,
		spaceAccepts: true,
		jig:          opts.Jig,
		coords: func(_ *getterRun[geom.Point2D], p geom.Point2D) (geom.Point2D, bool, error) {
			if err := opts.check(p); err != nil {
				return p, false, err
			}
			return p, true, nil
		},
		text: func(s string) (geom.Point2D, error) {
			p, err := parsePoint(s, relTo)
			if err != nil {
				return p, err
			}
			return p, opts.check(p)
		},
		track: func(g *getterRun[geom.Point2D], p geom.Point2D) (geom.Point2D, bool) {
			if base != nil {
				band.update(ed, g.attach, *base, p)
			}
			return p, true
		},
	})
	if res.IsAccepted() {
		p := res.Value
		ed.lastPoint = &p
	}
	return res
}

// GetCorner requests the opposite corner of a rectangle from the base point,
// previewed as a rectangle.
func (ed *Editor) GetCorner(ctx context.Context, opts *JigOptions[geom.Point2D]) InputResult[geom.Point2D] {
	base := basePointer(&opts.Options)
	var rect *drawable.Polyline
	return runGetter(ctx, ed, getterSpec[geom.Point2D]{
		opts:         &opts.Options,
		spaceAccepts: true,
		jig:          opts.Jig,
		coords: func(_ *getterRun[geom.Point2D], p geom.Point2D) (geom.Point2D, bool, error) {
			if err := opts.check(p); err != nil {
				return p, false, err
			}
			return p, true, nil
		},
		text: func(s string) (geom.Point2D, error) {
			p, err := parsePoint(s, base)
			if err != nil {
				return p, err
			}
			return p, opts.check(p)
		},
		track: func(g *getterRun[geom.Point2D], p geom.Point2D) (geom.Point2D, bool) {
			if base == nil {
				return p, true
			}
			corners := geom.ExtentsOf(*base, p).Corners()
			if rect == nil {
				rect = drawable.NewPolygon(corners[:]...)
				rect.SetStyle(ed.jigStyle())
				g.attach(ed.doc.Jigged, rect)
			} else {
				copy(rect.Points, corners[:])
			}
			return p, true
		},
	})
}

// GetAngle requests an angle in radians. Typed values are in degrees;
// clicks measure the angle from the base point.
func (ed *Editor) GetAngle(ctx context.Context, opts *JigOptions[float64]) InputResult[float64] {
	base := basePointer(&opts.Options)
	var band rubberBand
	return runGetter(ctx, ed, getterSpec[float64]{
		opts:         &opts.Options,
		spaceAccepts: true,
		jig:          opts.Jig,
		coords: func(_ *getterRun[float64], p geom.Point2D) (float64, bool, error) {
			if base == nil {
				return 0, false, invalidInput("type the angle in degrees")
			}
			v := p.Sub(*base)
			if v.IsZero() {
				return 0, false, invalidInput("point is on the base point")
			}
			a := v.Angle()
			if err := opts.check(a); err != nil {
				return 0, false, err
			}
			return a, true, nil
		},
		text: func(s string) (float64, error) {
			deg, err := parseFloat(s)
			if err != nil {
				return 0, err
			}
			a := geom.Radians(deg)
			return a, opts.check(a)
		},
		track: func(g *getterRun[float64], p geom.Point2D) (float64, bool) {
			if base == nil {
				return 0, false
			}
			band.update(ed, g.attach, *base, p)
			v := p.Sub(*base)
			return v.Angle(), !v.IsZero()
		},
	})
}

// GetDistance requests a non-negative length, typed or measured from the
// base point.
func (ed *Editor) GetDistance(ctx context.Context, opts *JigOptions[float64]) InputResult[float64] {
	base := basePointer(&opts.Options)
	var band rubberBand
	return runGetter(ctx, ed, getterSpec[float64]{
		opts:         &opts.Options,
		spaceAccepts: true,
		jig:          opts.Jig,
		coords: func(_ *getterRun[float64], p geom.Point2D) (float64, bool, error) {
			if base == nil {
				return 0, false, invalidInput("type the distance")
			}
			d := base.DistanceTo(p)
			if err := opts.check(d); err != nil {
				return 0, false, err
			}
			return d, true, nil
		},
		text: func(s string) (float64, error) {
			d, err := parseFloat(s)
			if err != nil {
				return 0, err
			}
			if d < 0 {
				return 0, invalidInput("distance must not be negative")
			}
			return d, opts.check(d)
		},
		track: func(g *getterRun[float64], p geom.Point2D) (float64, bool) {
			if base == nil {
				return 0, false
			}
			band.update(ed, g.attach, *base, p)
			return base.DistanceTo(p), true
		},
	})
}

// GetText requests a line of text. Space types a blank and keywords are not
// offered.
func (ed *Editor) GetText(ctx context.Context, opts *Options) InputResult[string] {
	return runGetter(ctx, ed, getterSpec[string]{
		opts:         opts,
		hideKeywords: true,
		text:         func(s string) (string, error) { return s, nil },
	})
}

// GetInt requests an integer within the sign limits of opts.
func (ed *Editor) GetInt(ctx context.Context, opts *NumberOptions) InputResult[int] {
	return runGetter(ctx, ed, getterSpec[int]{
		opts:         &opts.Options,
		spaceAccepts: true,
		text: func(s string) (int, error) {
			v, err := parseInt(s)
			if err != nil {
				return 0, err
			}
			return v, opts.check(float64(v))
		},
	})
}

// GetFloat requests a number within the sign limits of opts.
func (ed *Editor) GetFloat(ctx context.Context, opts *NumberOptions) InputResult[float64] {
	return runGetter(ctx, ed, getterSpec[float64]{
		opts:         &opts.Options,
		spaceAccepts: true,
		text: func(s string) (float64, error) {
			v, err := parseFloat(s)
			if err != nil {
				return 0, err
			}
			return v, opts.check(v)
		},
	})
}

// GetFilename asks the file dialog when the editor has one, finishing
// without waiting; otherwise the name is typed.
func (ed *Editor) GetFilename(ctx context.Context, opts *FilenameOptions) InputResult[string] {
	return runGetter(ctx, ed, getterSpec[string]{
		opts:         &opts.Options,
		hideKeywords: true,
		init: func(g *getterRun[string]) bool {
			if ed.files == nil {
				return false
			}
			var name string
			var ok bool
			if opts.Save {
				name, ok = ed.files.SaveFilename(opts.Filter)
			} else {
				name, ok = ed.files.OpenFilename(opts.Filter)
			}
			if ok {
				g.finish(accepted(name, ReasonInit))
			} else {
				g.finish(cancelled[string](ReasonEscape))
			}
			return true
		},
		text: func(s string) (string, error) { return s, nil },
	})
}
