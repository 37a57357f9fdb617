package editor

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/event"
	"github.com/inamate/drafter/internal/evreg"
	"github.com/inamate/drafter/internal/geom"
)

// getterSpec configures one input request.
type getterSpec[T any] struct {
	opts *Options
	// spaceAccepts makes Space act like Enter instead of typing a blank.
	spaceAccepts bool
	// hideKeywords leaves keywords out of the prompt and never matches them.
	hideKeywords bool
	jig          func(T)

	// init runs before waiting and may finish the request right away.
	init func(g *getterRun[T]) bool
	// coords handles a primary click. done=false keeps waiting.
	coords func(g *getterRun[T], p geom.Point2D) (v T, done bool, err error)
	// text parses the typed buffer after keyword matching failed.
	text func(s string) (T, error)
	// track updates previews for the cursor and returns the live value for
	// the jig, if any.
	track   func(g *getterRun[T], p geom.Point2D) (T, bool)
	dispose func()
}

// getterRun is the state of one input request. It is created on the command
// goroutine; its handlers run on the event goroutine while the command waits.
type getterRun[T any] struct {
	ed       *Editor
	spec     getterSpec[T]
	handlers evreg.Unregister
	previews []preview
	buf      []rune
	result   InputResult[T]
	finished bool
	released bool
	done     chan struct{}
}

type preview struct {
	scene *document.Scene
	d     drawable.Drawable
}

// runGetter requests input and blocks the command goroutine until the
// request is resolved. Outside a running command, after Close or while
// another request waits it returns Cancelled(ReasonAbort) immediately.
func runGetter[T any](ctx context.Context, ed *Editor, spec getterSpec[T]) InputResult[T] {
	if ed.closed || !ed.running || ed.active != nil || ctx.Err() != nil {
		return cancelled[T](ReasonAbort)
	}

	g := &getterRun[T]{ed: ed, spec: spec, done: make(chan struct{}, 1)}
	defer g.release()

	ed.inputMode = true
	ed.setPrompt(g.fullPrompt())
	ed.logger.Debug("waiting for input", "command", ed.command, "prompt", g.fullPrompt())

	if spec.init != nil && spec.init(g) {
		return g.result
	}

	in := &ed.input
	g.handlers.Add(
		in.Add(event.CursorMoveEvId, func(ev any) { g.onMove(ev.(*event.CursorMove)) }),
		in.Add(event.CursorClickEvId, func(ev any) { g.onClick(ev.(*event.CursorClick)) }),
		in.Add(event.KeyDownEvId, func(ev any) { g.onKeyDown(ev.(*event.KeyDown)) }),
		in.Add(event.KeyPressEvId, func(ev any) { g.onKeyPress(ev.(*event.KeyPress)) }),
	)

	ed.active = g
	ed.yield <- struct{}{}
	<-g.done
	return g.result
}

func (g *getterRun[T]) resolved() bool { return g.finished }

func (g *getterRun[T]) abort() { g.finish(cancelled[T](ReasonAbort)) }

func (g *getterRun[T]) wake() { g.done <- struct{}{} }

func (g *getterRun[T]) fullPrompt() string {
	return g.spec.opts.prompt(!g.spec.hideKeywords)
}

// finish resolves the request once and releases it right away, so previews
// and handlers are gone before the command resumes.
func (g *getterRun[T]) finish(res InputResult[T]) {
	if g.finished {
		return
	}
	g.result = res
	g.finished = true
	g.release()
}

// release runs exactly once on every exit path.
func (g *getterRun[T]) release() {
	if g.released {
		return
	}
	g.released = true

	for _, p := range g.previews {
		p.scene.Remove(p.d)
	}
	g.previews = nil
	g.ed.setPrompt("")
	g.handlers.UnregisterAll()
	g.ed.inputMode = false
	if g.ed.active == activeGetter(g) {
		g.ed.active = nil
	}
	if g.spec.dispose != nil {
		g.spec.dispose()
	}
}

// attach shows d in scene until the request is released.
func (g *getterRun[T]) attach(scene *document.Scene, d drawable.Drawable) {
	scene.Add(d)
	g.previews = append(g.previews, preview{scene, d})
}

func (g *getterRun[T]) settings() *document.Settings {
	return g.ed.doc.Settings
}

// onMove updates previews and, while nothing is typed, shows the cursor
// coordinate after the prompt.
func (g *getterRun[T]) onMove(e *event.CursorMove) {
	if g.finished {
		return
	}
	if g.spec.track != nil {
		v, ok := g.spec.track(g, e.World)
		if ok && g.spec.jig != nil {
			g.spec.jig(v)
		}
	}
	if len(g.buf) == 0 && !g.finished {
		g.ed.setPrompt(g.fullPrompt() + g.ed.CursorText())
	}
}

func (g *getterRun[T]) onClick(e *event.CursorClick) {
	if g.finished {
		return
	}
	switch e.Button {
	case event.ButtonRight:
		g.accept(ReasonEnter)
	case event.ButtonLeft:
		if g.spec.coords == nil {
			return
		}
		v, done, err := g.spec.coords(g, e.World)
		if err != nil {
			g.reprompt(err)
			return
		}
		if done {
			g.finish(accepted(v, ReasonCoords))
		}
	}
}

func (g *getterRun[T]) onKeyDown(e *event.KeyDown) {
	if g.finished {
		return
	}
	switch e.KeySym {
	case event.KSymEscape:
		g.finish(cancelled[T](ReasonEscape))
	case event.KSymReturn:
		g.accept(ReasonEnter)
	case event.KSymSpace:
		if g.spec.spaceAccepts {
			g.accept(ReasonSpace)
		}
	case event.KSymBackspace:
		if n := len(g.buf); n > 0 {
			g.buf = g.buf[:n-1]
			g.ed.setPrompt(g.fullPrompt() + string(g.buf))
		}
	}
}

func (g *getterRun[T]) onKeyPress(e *event.KeyPress) {
	if g.finished {
		return
	}
	if e.Rune == ' ' && g.spec.spaceAccepts {
		return
	}
	if !unicode.IsPrint(e.Rune) {
		return
	}
	g.buf = append(g.buf, e.Rune)
	g.ed.setPrompt(g.fullPrompt() + string(g.buf))
}

// accept handles Enter, Space and the secondary click: default keyword on
// an empty buffer, then keyword matching, then parsing.
func (g *getterRun[T]) accept(reason Reason) {
	raw := string(g.buf)
	text := strings.TrimSpace(raw)
	opts := g.spec.opts

	if text == "" {
		if kw := opts.DefaultKeyword(); kw != "" && !g.spec.hideKeywords {
			g.finish(keyword[T](kw, reason))
			return
		}
		g.finish(cancelled[T](reason))
		return
	}
	if !g.spec.hideKeywords {
		if kw, ok := opts.MatchKeyword(text); ok {
			g.finish(keyword[T](kw, reason))
			return
		}
	}
	if g.spec.text == nil {
		g.reprompt(invalidInput("%q", text))
		return
	}
	if g.spec.hideKeywords {
		text = raw
	}
	v, err := g.spec.text(text)
	if err != nil {
		g.reprompt(err)
		return
	}
	g.finish(accepted(v, ReasonText))
}

// reprompt shows err in front of the prompt and clears the typed buffer.
func (g *getterRun[T]) reprompt(err error) {
	g.buf = g.buf[:0]
	g.ed.setPrompt(fmt.Sprintf("%v. %s", err, g.fullPrompt()))
}
