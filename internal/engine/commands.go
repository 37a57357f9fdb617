package engine

import (
	"encoding/json"
	"slices"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path", "fill", "text"
	ObjectID    string        `json:"objectId,omitempty"`    // For hit correlation
	Layer       string        `json:"layer,omitempty"`       // Scene the object belongs to
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" and "fill" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width in pixels
	Dash        []float64     `json:"dash,omitempty"`        // Line dash pattern
	X           float64       `json:"x,omitempty"`           // Text anchor
	Y           float64       `json:"y,omitempty"`
	Text        string        `json:"text,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"` // Text height in pixels
	Rotation    float64       `json:"rotation,omitempty"` // Text rotation in canvas radians
}

// Frame is everything the frontend needs to paint one view of the drawing.
type Frame struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Background string        `json:"background"`
	Commands   []DrawCommand `json:"commands"`
	Prompt     string        `json:"prompt"`
	Cursor     string        `json:"cursor"`
}

// CompileDrawCommands generates a draw command buffer for the document.
// Commands are in painter's order (back to front): the model, the
// highlighted objects with their control points, the jig previews and the
// transient overlays.
func CompileDrawCommands(doc *document.Document, highlighted []drawable.Drawable, v *Viewport) []DrawCommand {
	if doc == nil {
		return nil
	}
	r := newRecorder(v)

	compileScene(r, doc.Model)

	if len(highlighted) > 0 {
		settings := doc.Settings
		highlight := settings.Color(document.SettingSelectionHighlightColor)
		r.layer = "Selection"
		r.restyle = func(s drawable.Style) drawable.Style {
			s.Color = highlight
			s.LineWidth = max(s.LineWidth, 1) + 2
			return s
		}
		for _, d := range highlighted {
			r.objectID = d.ID()
			d.Draw(r)
		}
		r.restyle = nil

		grip := drawable.Style{Color: settings.Color(document.SettingControlPointColor)}
		size := settings.Float(document.SettingControlPointSize)
		for _, d := range highlighted {
			r.objectID = d.ID()
			for _, cp := range d.ControlPoints() {
				r.grip(cp.Location, size, grip)
			}
		}
	}

	compileScene(r, doc.Jigged)
	compileScene(r, doc.Transients)
	return r.commands
}

func compileScene(r *recorder, scene *document.Scene) {
	r.layer = scene.Name
	for _, d := range scene.Items() {
		if !d.Visible() {
			continue
		}
		r.objectID = d.ID()
		d.Draw(r)
	}
	r.objectID = ""
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the ID of the topmost visible model object within tol of
// p, or the empty string.
func HitTest(doc *document.Document, p geom.Point2D, tol float64) string {
	if doc == nil {
		return ""
	}
	for _, d := range slices.Backward(doc.Model.Items()) {
		if d.Visible() && d.Contains(p, tol) {
			return d.ID()
		}
	}
	return ""
}

// GetSelectionBounds returns the combined extents of the given objects.
func GetSelectionBounds(items []drawable.Drawable) geom.Extents2D {
	var result geom.Extents2D
	for _, d := range items {
		result.Union(d.Extents())
	}
	return result
}

// ExtentsToJSON serializes extents as a rect in the same coordinates.
func ExtentsToJSON(e geom.Extents2D) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      e.XMin,
		"y":      e.YMin,
		"width":  e.Width(),
		"height": e.Height(),
	})
	return string(data)
}
