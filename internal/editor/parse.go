package editor

import (
	"math"
	"strconv"
	"strings"

	"github.com/inamate/drafter/internal/geom"
)

// parsePoint reads "x,y" or "x;y". A leading '@' makes the coordinates
// relative to base, which must then be present.
func parsePoint(text string, base *geom.Point2D) (geom.Point2D, error) {
	s := strings.TrimSpace(text)
	rel := strings.HasPrefix(s, "@")
	if rel {
		s = s[1:]
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	if len(parts) != 2 {
		return geom.Point2D{}, invalidInput("expected x,y but got %q", text)
	}
	x, err := parseFloat(parts[0])
	if err != nil {
		return geom.Point2D{}, err
	}
	y, err := parseFloat(parts[1])
	if err != nil {
		return geom.Point2D{}, err
	}
	if !rel {
		return geom.Pt(x, y), nil
	}
	if base == nil {
		return geom.Point2D{}, invalidInput("relative point %q needs a base point", text)
	}
	return base.Add(geom.Vec(x, y)), nil
}

func parseFloat(text string) (float64, error) {
	s := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(s, 64)
	// ParseFloat also accepts "nan" and "inf".
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidInput("%q is not a number", s)
	}
	return v, nil
}

func parseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, invalidInput("%q is not an integer", strings.TrimSpace(text))
	}
	return v, nil
}
