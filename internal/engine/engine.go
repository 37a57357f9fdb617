// Package engine is the per-drawing facade used by the browser bridge and the
// session server. It owns the document, the editor and the viewport and
// turns canvas input into editor events and the drawing into draw commands.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/inamate/drafter/internal/command"
	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/event"
	"github.com/inamate/drafter/internal/evreg"
	"github.com/inamate/drafter/internal/geom"
)

// Default canvas size until the frontend reports its own.
const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	// Events relays the editor notifications (editor.PromptEvId,
	// editor.ErrorEvId, editor.CommandStartedEvId, editor.CommandEndedEvId)
	// across document reloads.
	Events evreg.Register

	doc      *document.Document
	ed       *editor.Editor
	view     *Viewport
	registry *editor.Registry
	logger   *slog.Logger
	store    document.Store
	files    editor.FileDialog
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }
func WithStore(s document.Store) Option { return func(e *Engine) { e.store = s } }
func WithFileDialog(f editor.FileDialog) Option { return func(e *Engine) { e.files = f } }
func WithRegistry(r *editor.Registry) Option { return func(e *Engine) { e.registry = r } }

// NewEngine creates an engine with an empty drawing and the built-in
// commands.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		view:   NewViewport(defaultWidth, defaultHeight),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = command.NewRegistry()
	}
	e.setDocument(document.New("Untitled"))
	return e
}

// setDocument closes the current editor, aborting any running command, and
// opens doc in a new one.
func (e *Engine) setDocument(doc *document.Document) {
	if e.ed != nil {
		e.ed.Close()
	}
	e.doc = doc
	opts := []editor.Option{editor.WithLogger(e.logger), editor.WithView(e.view)}
	if e.store != nil {
		opts = append(opts, editor.WithStore(e.store))
	}
	if e.files != nil {
		opts = append(opts, editor.WithFileDialog(e.files))
	}
	e.ed = editor.New(doc, e.registry, opts...)
	for _, id := range []int{editor.PromptEvId, editor.ErrorEvId, editor.CommandStartedEvId, editor.CommandEndedEvId} {
		e.ed.Notify.Add(id, func(ev any) { e.Events.RunCallbacks(id, ev) })
	}
}

func (e *Engine) Document() *document.Document { return e.doc }
func (e *Engine) Editor() *editor.Editor { return e.ed }
func (e *Engine) Viewport() *Viewport { return e.view }

// --- Commands (frontend → backend) ---

// RunCommand starts a registered command by name.
func (e *Engine) RunCommand(ctx context.Context, name string, args ...string) error {
	return e.ed.RunCommand(ctx, name, args...)
}

// PointerMove reports the cursor at canvas pixel (x, y).
func (e *Engine) PointerMove(x, y float64, mods event.KeyModifiers) {
	e.ed.Dispatch(&event.CursorMove{Screen: geom.Pt(x, y), Mods: mods})
}

// PointerClick reports a click of the DOM button index at canvas pixel (x, y).
func (e *Engine) PointerClick(x, y float64, button int, mods event.KeyModifiers) {
	e.ed.Dispatch(&event.CursorClick{Screen: geom.Pt(x, y), Button: event.ParseButton(button), Mods: mods})
}

// KeyDown reports a DOM key name. Single printable characters other than
// space are delivered as key presses.
func (e *Engine) KeyDown(key string, mods event.KeyModifiers) {
	if ks := event.ParseKeySym(key); ks != event.KSymNone {
		e.ed.Dispatch(&event.KeyDown{KeySym: ks, Mods: mods})
		if ks == event.KSymSpace {
			e.ed.Dispatch(&event.KeyPress{Rune: ' '})
		}
		return
	}
	if r := []rune(key); len(r) == 1 {
		e.KeyPress(r[0])
	}
}

func (e *Engine) KeyPress(r rune) {
	e.ed.Dispatch(&event.KeyPress{Rune: r})
}

func (e *Engine) Pan(dx, dy float64) { e.view.Pan(dx, dy) }

// Zoom scales the view by factor around canvas pixel (x, y).
func (e *Engine) Zoom(factor, x, y float64) { e.view.Zoom(factor, geom.Pt(x, y)) }

func (e *Engine) Resize(width, height float64) { e.view.Resize(width, height) }

// ZoomExtents fits the whole model into the canvas.
func (e *Engine) ZoomExtents() {
	e.view.ZoomExtents(GetSelectionBounds(e.doc.Model.Items()), 20)
}

// SetSelection replaces the picked selection with the model objects whose
// ids are given. Unknown ids are ignored.
func (e *Engine) SetSelection(ids []string) {
	items := make([]drawable.Drawable, 0, len(ids))
	for _, id := range ids {
		if d := e.doc.Model.Find(id); d != nil {
			items = append(items, d)
		}
	}
	e.ed.PickedSelection.Reset(items)
}

// ApplySettings merges a JSON object of settings into the document.
func (e *Engine) ApplySettings(data []byte) error {
	return e.doc.Settings.ApplyJSON(data)
}

// LoadSample replaces the drawing with the built-in sample.
func (e *Engine) LoadSample() {
	e.setDocument(document.NewSampleDocument())
	e.ZoomExtents()
}

// LoadDocument replaces the drawing with a snapshot in JSON.
func (e *Engine) LoadDocument(data []byte) error {
	var snap document.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	return e.LoadSnapshot(&snap)
}

// LoadSnapshot replaces the drawing with a decoded snapshot.
func (e *Engine) LoadSnapshot(snap *document.Snapshot) error {
	doc, err := document.Decode(snap)
	if err != nil {
		return err
	}
	e.setDocument(doc)
	return nil
}

// Close aborts the running command, if any.
func (e *Engine) Close() {
	e.ed.Close()
}

// --- Queries (frontend ← backend) ---

// Frame evaluates the current view.
func (e *Engine) Frame() Frame {
	commands := CompileDrawCommands(e.doc, e.highlighted(), e.view)
	if commands == nil {
		commands = []DrawCommand{}
	}
	return Frame{
		Width:      e.view.Width,
		Height:     e.view.Height,
		Background: document.FormatColor(e.doc.Settings.Color(document.SettingBackColor)),
		Commands:   commands,
		Prompt:     e.ed.Prompt(),
		Cursor:     e.ed.CursorText(),
	}
}

// Render returns the current frame as JSON.
func (e *Engine) Render() string {
	data, err := json.Marshal(e.Frame())
	if err != nil {
		e.logger.Error("render failed", "error", err)
		return "{}"
	}
	return string(data)
}

// highlighted is the selection being built by the running command, or the
// picked selection when idle.
func (e *Engine) highlighted() []drawable.Drawable {
	if e.ed.CommandRunning() && !e.ed.CurrentSelection.IsEmpty() {
		return e.ed.CurrentSelection.Items()
	}
	return e.ed.PickedSelection.Items()
}

// HitTest returns the id of the topmost object at canvas pixel (x, y), or
// the empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.doc, e.view.ScreenToWorld(geom.Pt(x, y)), e.ed.PickTolerance())
}

// GetSelectionBounds returns the world extents of the highlighted objects
// as JSON.
func (e *Engine) GetSelectionBounds() string {
	return ExtentsToJSON(GetSelectionBounds(e.highlighted()))
}

// GetSelection returns the ids of the highlighted objects as JSON.
func (e *Engine) GetSelection() string {
	items := e.highlighted()
	ids := make([]string, len(items))
	for i, d := range items {
		ids[i] = d.ID()
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// GetDocument returns the drawing as a snapshot in JSON.
func (e *Engine) GetDocument() string {
	snap, err := document.Encode(e.doc)
	if err != nil {
		e.logger.Error("encoding document failed", "error", err)
		return "{}"
	}
	data, _ := json.Marshal(snap)
	return string(data)
}

func (e *Engine) Prompt() string { return e.ed.Prompt() }

// GetCommands lists the registered commands as JSON.
func (e *Engine) GetCommands() string {
	type entry struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	descs := e.registry.Descriptors()
	out := make([]entry, len(descs))
	for i, d := range descs {
		out[i] = entry{d.Name, d.DisplayName}
	}
	data, _ := json.Marshal(out)
	return string(data)
}
