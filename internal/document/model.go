package document

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
)

// Snapshot is the stored form of a document's model and settings.
type Snapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Version  int             `json:"version"`
	Objects  []ObjectNode    `json:"objects"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

const snapshotVersion = 1

type ObjectType string

const (
	ObjectTypePoint     ObjectType = "Point"
	ObjectTypeLine      ObjectType = "Line"
	ObjectTypeCircle    ObjectType = "Circle"
	ObjectTypeArc       ObjectType = "Arc"
	ObjectTypeEllipse   ObjectType = "Ellipse"
	ObjectTypePolyline  ObjectType = "Polyline"
	ObjectTypeHatch     ObjectType = "Hatch"
	ObjectTypeText      ObjectType = "Text"
	ObjectTypeComposite ObjectType = "Composite"
)

type ObjectNode struct {
	ID       string          `json:"id"`
	Type     ObjectType      `json:"type"`
	Style    drawable.Style  `json:"style"`
	Visible  bool            `json:"visible"`
	Data     json.RawMessage `json:"data,omitempty"`
	Children []ObjectNode    `json:"children,omitempty"`
}

type pointData struct {
	Location geom.Point2D `json:"location"`
}

type lineData struct {
	A geom.Point2D `json:"a"`
	B geom.Point2D `json:"b"`
}

type arcData struct {
	Center     geom.Point2D `json:"center"`
	Radius     float64      `json:"radius"`
	StartAngle float64      `json:"startAngle,omitempty"`
	EndAngle   float64      `json:"endAngle,omitempty"`
}

type ellipseData struct {
	Center   geom.Point2D `json:"center"`
	RX       float64      `json:"rx"`
	RY       float64      `json:"ry"`
	Rotation float64      `json:"rotation"`
}

type polyData struct {
	Points []geom.Point2D `json:"points"`
	Closed bool           `json:"closed,omitempty"`
}

type textData struct {
	Position geom.Point2D `json:"position"`
	Content  string       `json:"content"`
	Height   float64      `json:"height"`
	Rotation float64      `json:"rotation"`
}

// Encode captures the model scene and settings of doc.
func Encode(doc *Document) (*Snapshot, error) {
	snap := &Snapshot{ID: doc.ID, Name: doc.Name, Version: snapshotVersion}
	for _, d := range doc.Model.Items() {
		node, err := EncodeObject(d)
		if err != nil {
			return nil, err
		}
		snap.Objects = append(snap.Objects, node)
	}
	settings, err := json.Marshal(doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	snap.Settings = settings
	return snap, nil
}

// EncodeObject converts one drawable, recursing into composites.
func EncodeObject(d drawable.Drawable) (ObjectNode, error) {
	node := ObjectNode{ID: d.ID(), Style: d.Style(), Visible: d.Visible()}
	var data any
	switch o := d.(type) {
	case *drawable.Point:
		node.Type, data = ObjectTypePoint, pointData{o.Location}
	case *drawable.Line:
		node.Type, data = ObjectTypeLine, lineData{o.A, o.B}
	case *drawable.Circle:
		node.Type, data = ObjectTypeCircle, arcData{Center: o.Center, Radius: o.Radius}
	case *drawable.Arc:
		node.Type, data = ObjectTypeArc, arcData{o.Center, o.Radius, o.StartAngle, o.EndAngle}
	case *drawable.Ellipse:
		node.Type, data = ObjectTypeEllipse, ellipseData{o.Center, o.RX, o.RY, o.Rotation}
	case *drawable.Polyline:
		node.Type, data = ObjectTypePolyline, polyData{o.Points, o.Closed}
	case *drawable.Hatch:
		node.Type, data = ObjectTypeHatch, polyData{Points: o.Points}
	case *drawable.Text:
		node.Type, data = ObjectTypeText, textData{o.Position, o.Content, o.Height, o.Rotation}
	case *drawable.Composite:
		node.Type = ObjectTypeComposite
		for _, c := range o.Children() {
			child, err := EncodeObject(c)
			if err != nil {
				return node, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil
	default:
		return node, fmt.Errorf("encoding object %s: unsupported kind %q", d.ID(), d.Kind())
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return node, fmt.Errorf("encoding object %s: %w", d.ID(), err)
	}
	node.Data = raw
	return node, nil
}

// Decode builds a document from a snapshot.
func Decode(snap *Snapshot) (*Document, error) {
	doc := New(snap.Name)
	if snap.ID != "" {
		doc.ID = snap.ID
	}
	for _, node := range snap.Objects {
		d, err := DecodeObject(node)
		if err != nil {
			return nil, err
		}
		doc.Model.Add(d)
	}
	if len(snap.Settings) > 0 {
		if err := doc.Settings.ApplyJSON(snap.Settings); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// DecodeObject converts one stored node back into a drawable, keeping its id.
func DecodeObject(node ObjectNode) (drawable.Drawable, error) {
	var d interface {
		drawable.Drawable
		SetID(string)
	}
	var err error
	switch node.Type {
	case ObjectTypePoint:
		var v pointData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewPoint(v.Location)
	case ObjectTypeLine:
		var v lineData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewLine(v.A, v.B)
	case ObjectTypeCircle:
		var v arcData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewCircle(v.Center, v.Radius)
	case ObjectTypeArc:
		var v arcData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewArc(v.Center, v.Radius, v.StartAngle, v.EndAngle)
	case ObjectTypeEllipse:
		var v ellipseData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewEllipse(v.Center, v.RX, v.RY, v.Rotation)
	case ObjectTypePolyline:
		var v polyData
		err = json.Unmarshal(node.Data, &v)
		p := drawable.NewPolyline(v.Points...)
		p.Closed = v.Closed
		d = p
	case ObjectTypeHatch:
		var v polyData
		err = json.Unmarshal(node.Data, &v)
		d = drawable.NewHatch(v.Points...)
	case ObjectTypeText:
		var v textData
		err = json.Unmarshal(node.Data, &v)
		t := drawable.NewText(v.Position, v.Content, v.Height)
		t.Rotation = v.Rotation
		d = t
	case ObjectTypeComposite:
		c := drawable.NewComposite()
		for _, childNode := range node.Children {
			child, cerr := DecodeObject(childNode)
			if cerr != nil {
				return nil, cerr
			}
			c.Add(child)
		}
		d = c
	default:
		return nil, fmt.Errorf("decoding object %s: unknown type %q", node.ID, node.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding object %s: %w", node.ID, err)
	}
	if node.ID != "" {
		d.SetID(node.ID)
	}
	d.SetStyle(node.Style)
	d.SetVisible(node.Visible)
	return d, nil
}
