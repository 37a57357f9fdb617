// Package editor relays pointer and keyboard input into commands. Commands
// run in their own goroutine and suspend inside getters; control passes
// between the event source and the command strictly through channels, so
// only one side runs at a time.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/event"
	"github.com/inamate/drafter/internal/evreg"
	"github.com/inamate/drafter/internal/geom"
	"github.com/inamate/drafter/internal/selection"
)

// Notification ids, registered on Editor.Notify.
const (
	PromptEvId = iota
	ErrorEvId
	CommandStartedEvId
	CommandEndedEvId
)

type PromptEvent struct {
	Text string
}

type ErrorEvent struct {
	Err error
}

type CommandEvent struct {
	Name string
	Err  error
}

// View converts between screen pixels and world units.
type View interface {
	ScreenToWorld(p geom.Point2D) geom.Point2D
	// WorldLength converts a length in pixels to world units.
	WorldLength(pixels float64) float64
}

// FileDialog asks the user for a file name synchronously.
type FileDialog interface {
	OpenFilename(filter string) (string, bool)
	SaveFilename(filter string) (string, bool)
}

// activeGetter is the getter currently waiting for input.
type activeGetter interface {
	resolved() bool
	abort()
	wake()
}

// Editor owns the selections of one document and runs its commands.
// Its methods must be called from a single goroutine, the event source.
type Editor struct {
	CurrentSelection *selection.Set
	PickedSelection  *selection.Set
	// Notify carries prompt, error and command lifecycle notifications.
	// Callbacks run on the event goroutine or on the command goroutine
	// while the event goroutine waits.
	Notify evreg.Register

	doc      *document.Document
	registry *Registry
	view     View
	files    FileDialog
	store    document.Store
	logger   *slog.Logger

	input     evreg.Register
	yield     chan struct{}
	active    activeGetter
	running   bool
	command   string
	inputMode bool
	closed    bool
	prompt    string
	cursor    geom.Point2D
	lastPoint *geom.Point2D
}

type Option func(*Editor)

func WithLogger(l *slog.Logger) Option { return func(ed *Editor) { ed.logger = l } }
func WithView(v View) Option { return func(ed *Editor) { ed.view = v } }
func WithFileDialog(f FileDialog) Option { return func(ed *Editor) { ed.files = f } }
func WithStore(s document.Store) Option { return func(ed *Editor) { ed.store = s } }

func New(doc *document.Document, registry *Registry, opts ...Option) *Editor {
	ed := &Editor{
		CurrentSelection: selection.New(),
		PickedSelection:  selection.New(),
		doc:              doc,
		registry:         registry,
		logger:           slog.Default(),
		yield:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ed)
	}
	return ed
}

func (ed *Editor) Document() *document.Document { return ed.doc }
func (ed *Editor) Registry() *Registry { return ed.registry }
func (ed *Editor) Store() document.Store { return ed.store }
func (ed *Editor) Logger() *slog.Logger { return ed.logger }

// Prompt is the text shown to the user, empty when no input is requested.
func (ed *Editor) Prompt() string { return ed.prompt }

// InputMode reports whether a getter is waiting for input.
func (ed *Editor) InputMode() bool { return ed.inputMode }

// CommandRunning reports whether a command has started and not finished.
func (ed *Editor) CommandRunning() bool { return ed.running }

// ActiveCommand is the name of the running command, or empty.
func (ed *Editor) ActiveCommand() string { return ed.command }

// Cursor is the last pointer location in world coordinates.
func (ed *Editor) Cursor() geom.Point2D { return ed.cursor }

// CursorText formats the cursor with the display precision setting.
func (ed *Editor) CursorText() string {
	return ed.cursor.Format(ed.doc.Settings.Int(document.SettingDisplayPrecision))
}

// LastPoint is the most recent point accepted by GetPoint.
func (ed *Editor) LastPoint() (geom.Point2D, bool) {
	if ed.lastPoint == nil {
		return geom.Point2D{}, false
	}
	return *ed.lastPoint, true
}

// PickTolerance is half the pick box converted to world units.
func (ed *Editor) PickTolerance() float64 {
	px := ed.doc.Settings.Float(document.SettingPickBoxSize) / 2
	if ed.view == nil {
		return px
	}
	return ed.view.WorldLength(px)
}

// PickAt returns the topmost visible model object near p, or nil.
func (ed *Editor) PickAt(p geom.Point2D) drawable.Drawable {
	tol := ed.PickTolerance()
	items := ed.doc.Model.Items()
	for _, d := range slices.Backward(items) {
		if d.Visible() && d.Contains(p, tol) {
			return d
		}
	}
	return nil
}

// RunCommand starts the named command and returns once it finishes or first
// waits for input. Unknown names and a busy editor are reported through
// Notify as well as returned; failures inside the command are only reported.
func (ed *Editor) RunCommand(ctx context.Context, name string, args ...string) error {
	if ed.closed {
		return ErrEditorClosed
	}
	if ed.running {
		err := fmt.Errorf("%w: cannot start %s while %s runs", ErrCommandActive, name, ed.command)
		ed.reportError(err)
		return err
	}
	desc, ok := ed.registry.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		ed.reportError(err)
		return err
	}

	ed.running = true
	ed.command = desc.Name
	ed.logger.Info("command started", "command", desc.Name, "args", args)
	ed.Notify.RunCallbacks(CommandStartedEvId, &CommandEvent{Name: desc.Name})

	go ed.runCommand(ctx, desc, args)
	<-ed.yield
	return nil
}

func (ed *Editor) runCommand(ctx context.Context, desc Descriptor, args []string) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = &CommandError{Command: desc.Name, Panic: r, Stack: debug.Stack()}
		} else if err != nil {
			err = &CommandError{Command: desc.Name, Err: err}
		}

		if err != nil {
			ed.logger.Error("command failed", "command", desc.Name, "error", err)
			ed.reportError(err)
		} else {
			ed.logger.Info("command finished", "command", desc.Name)
			ed.CurrentSelection.Clear()
			ed.PickedSelection.Clear()
		}
		ed.running = false
		ed.command = ""
		ed.Notify.RunCallbacks(CommandEndedEvId, &CommandEvent{Name: desc.Name, Err: err})
		ed.yield <- struct{}{}
	}()

	err = desc.New().Apply(ctx, ed, args)
}

// Dispatch delivers one input event. With a getter waiting, the event goes
// to its handlers and, if that resolves the getter, the command resumes
// before Dispatch returns. Otherwise clicks pick objects and Escape clears
// the picked selection.
func (ed *Editor) Dispatch(ev any) {
	ed.toWorld(ev)

	g := ed.active
	if g == nil {
		ed.handleIdle(ev)
		return
	}
	ed.runHandlers(g, ev)
	if g.resolved() {
		g.wake()
		<-ed.yield
	}
}

func (ed *Editor) runHandlers(g activeGetter, ev any) {
	defer func() {
		if r := recover(); r != nil {
			err := &CommandError{Command: ed.command, Panic: r, Stack: debug.Stack()}
			ed.logger.Error("input handler failed", "command", ed.command, "error", err)
			ed.reportError(err)
			g.abort()
		}
	}()
	ed.input.RunCallbacks(event.Id(ev), ev)
}

func (ed *Editor) toWorld(ev any) {
	convert := func(p geom.Point2D) geom.Point2D {
		if ed.view == nil {
			return p
		}
		return ed.view.ScreenToWorld(p)
	}
	switch e := ev.(type) {
	case *event.CursorMove:
		e.World = convert(e.Screen)
		ed.cursor = e.World
	case *event.CursorClick:
		e.World = convert(e.Screen)
		ed.cursor = e.World
	}
}

func (ed *Editor) handleIdle(ev any) {
	switch e := ev.(type) {
	case *event.CursorClick:
		if e.Button != event.ButtonLeft {
			return
		}
		if d := ed.PickAt(e.World); d != nil {
			ed.PickedSelection.Toggle(d)
		} else if !e.Mods.HasAny(event.ModShift) {
			ed.PickedSelection.Clear()
		}
	case *event.KeyDown:
		if e.KeySym == event.KSymEscape {
			ed.PickedSelection.Clear()
		}
	}
}

// Close aborts the waiting getter, if any. Getters requested afterwards
// finish at once with ReasonAbort.
func (ed *Editor) Close() {
	if ed.closed {
		return
	}
	ed.closed = true
	if g := ed.active; g != nil {
		g.abort()
		g.wake()
		<-ed.yield
	}
}

func (ed *Editor) setPrompt(text string) {
	ed.prompt = text
	ed.Notify.RunCallbacks(PromptEvId, &PromptEvent{Text: text})
}

func (ed *Editor) reportError(err error) {
	ed.Notify.RunCallbacks(ErrorEvId, &ErrorEvent{Err: err})
}
