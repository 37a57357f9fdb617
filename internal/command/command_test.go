package command

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/event"
	"github.com/inamate/drafter/internal/geom"
)

type session struct {
	t    *testing.T
	doc  *document.Document
	ed   *editor.Editor
	errs []error
}

func newSession(t *testing.T, opts ...editor.Option) *session {
	s := &session{t: t, doc: document.New("test")}
	s.ed = editor.New(s.doc, NewRegistry(), opts...)
	s.ed.Notify.Add(editor.ErrorEvId, func(ev any) { s.errs = append(s.errs, ev.(*editor.ErrorEvent).Err) })
	return s
}

func (s *session) run(name string, args ...string) {
	s.t.Helper()
	if err := s.ed.RunCommand(context.Background(), name, args...); err != nil {
		s.t.Fatalf("RunCommand(%s) error = %v", name, err)
	}
}

func (s *session) move(x, y float64) {
	s.ed.Dispatch(&event.CursorMove{Screen: geom.Pt(x, y)})
}

func (s *session) click(x, y float64) {
	s.ed.Dispatch(&event.CursorClick{Screen: geom.Pt(x, y), Button: event.ButtonLeft})
}

func (s *session) key(ks event.KeySym) {
	s.ed.Dispatch(&event.KeyDown{KeySym: ks})
}

func (s *session) enter(text string) {
	for _, r := range text {
		s.ed.Dispatch(&event.KeyPress{Rune: r})
	}
	s.key(event.KSymReturn)
}

func (s *session) finished() {
	s.t.Helper()
	if s.ed.CommandRunning() {
		s.t.Fatalf("command still running, prompt %q", s.ed.Prompt())
	}
	if s.doc.Jigged.Len() != 0 || s.doc.Transients.Len() != 0 {
		s.t.Errorf("previews left: jigged=%d transients=%d", s.doc.Jigged.Len(), s.doc.Transients.Len())
	}
	if len(s.errs) != 0 {
		s.t.Errorf("errors reported: %v", s.errs)
	}
}

func lineAt(l drawable.Drawable, a, b geom.Point2D) bool {
	ln := l.(*drawable.Line)
	return ln.A.Equal(a, 1e-9) && ln.B.Equal(b, 1e-9)
}

func TestMoveJigRoundTrip(t *testing.T) {
	s := newSession(t)
	line := drawable.NewLine(geom.Pt(0, 0), geom.Pt(1, 1))
	s.doc.Model.Add(line)
	s.ed.PickedSelection.Add(line)

	s.run("Transform.Move")
	s.click(0, 0)

	s.move(2, 2)
	if s.doc.Jigged.Len() != 2 {
		t.Fatalf("Jigged.Len() = %d, want preview and rubber band", s.doc.Jigged.Len())
	}
	ghost := s.doc.Jigged.Items()[0]
	if !lineAt(ghost, geom.Pt(2, 2), geom.Pt(3, 3)) {
		t.Errorf("preview after (2,2) = %s", spew.Sdump(ghost))
	}
	s.move(5, 5)
	if !lineAt(ghost, geom.Pt(5, 5), geom.Pt(6, 6)) {
		t.Errorf("preview after (5,5) = %s", spew.Sdump(ghost))
	}
	if !lineAt(line, geom.Pt(0, 0), geom.Pt(1, 1)) {
		t.Error("jig moved the original")
	}

	s.click(5, 5)
	s.finished()
	if !lineAt(line, geom.Pt(5, 5), geom.Pt(6, 6)) {
		t.Errorf("moved line = %v-%v, want (5,5)-(6,6)", line.A, line.B)
	}
	if s.doc.Model.Len() != 1 {
		t.Errorf("Model.Len() = %d, want 1", s.doc.Model.Len())
	}
	if !s.ed.PickedSelection.IsEmpty() {
		t.Error("picked selection not cleared")
	}
}

func TestMoveWithWindowSelection(t *testing.T) {
	s := newSession(t)
	inside := drawable.NewPoint(geom.Pt(1, 1))
	outside := drawable.NewPoint(geom.Pt(50, 50))
	s.doc.Model.Add(inside, outside)

	s.run("Transform.Move")
	s.click(-1, -1)
	s.click(3, 3)
	s.key(event.KSymReturn)
	s.click(0, 0)
	s.enter("@10,0")
	s.finished()

	if !inside.Location.Equal(geom.Pt(11, 1), 1e-9) || !outside.Location.Equal(geom.Pt(50, 50), 0) {
		t.Errorf("locations = %v, %v", inside.Location, outside.Location)
	}
}

func TestCopyRepeats(t *testing.T) {
	s := newSession(t)
	c := drawable.NewCircle(geom.Pt(0, 0), 1)
	s.doc.Model.Add(c)
	s.ed.PickedSelection.Add(c)

	s.run("Transform.Copy")
	s.click(0, 0)
	s.click(10, 0)
	s.click(0, 10)
	s.key(event.KSymEscape)
	s.finished()

	items := s.doc.Model.Items()
	if len(items) != 3 {
		t.Fatalf("Model.Len() = %d, want 3", len(items))
	}
	want := []geom.Point2D{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10)}
	for i, d := range items {
		if got := d.(*drawable.Circle).Center; !got.Equal(want[i], 1e-9) {
			t.Errorf("circle %d center = %v, want %v", i, got, want[i])
		}
	}
	if items[1].ID() == c.ID() || items[2].ID() == items[1].ID() {
		t.Error("copies share ids")
	}
}

func TestRotateScaleMirror(t *testing.T) {
	tests := []struct {
		name    string
		command string
		input   func(s *session)
		wantLen int
		wantA   geom.Point2D
		wantB   geom.Point2D
	}{
		{
			name: "rotate typed", command: "Transform.Rotate",
			input:   func(s *session) { s.enter("90") },
			wantLen: 1, wantA: geom.Pt(0, 0), wantB: geom.Pt(0, 2),
		},
		{
			name: "rotate clicked", command: "Transform.Rotate",
			input:   func(s *session) { s.click(-3, 0) },
			wantLen: 1, wantA: geom.Pt(0, 0), wantB: geom.Pt(-2, 0),
		},
		{
			name: "scale", command: "Transform.Scale",
			input:   func(s *session) { s.enter("0"); s.enter("3") },
			wantLen: 1, wantA: geom.Pt(0, 0), wantB: geom.Pt(6, 0),
		},
		{
			name: "scale clicked on base", command: "Transform.Scale",
			input:   func(s *session) { s.click(0, 0); s.click(3, 0) },
			wantLen: 1, wantA: geom.Pt(0, 0), wantB: geom.Pt(6, 0),
		},
		{
			name: "rotate rejects nan", command: "Transform.Rotate",
			input:   func(s *session) { s.enter("nan"); s.enter("90") },
			wantLen: 1, wantA: geom.Pt(0, 0), wantB: geom.Pt(0, 2),
		},
		{
			name: "mirror", command: "Transform.Mirror",
			input:   func(s *session) { s.move(0, 3); s.click(0, 5) },
			wantLen: 2, wantA: geom.Pt(0, 0), wantB: geom.Pt(-2, 0),
		},
		{
			name: "mirror rejects zero length", command: "Transform.Mirror",
			input:   func(s *session) { s.click(0, 0); s.enter("@0,0"); s.click(0, 5) },
			wantLen: 2, wantA: geom.Pt(0, 0), wantB: geom.Pt(-2, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			line := drawable.NewLine(geom.Pt(0, 0), geom.Pt(2, 0))
			s.doc.Model.Add(line)
			s.ed.PickedSelection.Add(line)

			s.run(tt.command)
			s.click(0, 0)
			tt.input(s)

			if s.ed.CommandRunning() {
				t.Fatalf("command still running, prompt %q", s.ed.Prompt())
			}
			if len(s.errs) != 0 {
				t.Errorf("rejected input reported errors: %v", s.errs)
			}
			items := s.doc.Model.Items()
			if len(items) != tt.wantLen {
				t.Fatalf("Model.Len() = %d, want %d", len(items), tt.wantLen)
			}
			got := items[len(items)-1]
			if !lineAt(got, tt.wantA, tt.wantB) {
				t.Errorf("result = %s", spew.Sdump(got))
			}
			if tt.wantLen == 2 && !lineAt(line, geom.Pt(0, 0), geom.Pt(2, 0)) {
				t.Error("mirror changed the original")
			}
		})
	}
}

func TestScaleZeroReprompts(t *testing.T) {
	s := newSession(t)
	line := drawable.NewLine(geom.Pt(0, 0), geom.Pt(2, 0))
	s.doc.Model.Add(line)
	s.ed.PickedSelection.Add(line)

	s.run("Transform.Scale")
	s.click(0, 0)
	s.enter("0")
	if !s.ed.CommandRunning() {
		t.Fatal("zero scale finished the command")
	}
	if p := s.ed.Prompt(); !strings.HasPrefix(p, "invalid input") || !strings.HasSuffix(p, ". Scale: ") {
		t.Errorf("Prompt() = %q", p)
	}
	if len(s.errs) != 0 {
		t.Errorf("errors reported: %v", s.errs)
	}
	s.key(event.KSymEscape)
	s.finished()
	if !lineAt(line, geom.Pt(0, 0), geom.Pt(2, 0)) {
		t.Errorf("line changed: %s", spew.Sdump(line))
	}
}

func TestMovePromptFollowsCursor(t *testing.T) {
	s := newSession(t)
	line := drawable.NewLine(geom.Pt(0, 0), geom.Pt(1, 1))
	s.doc.Model.Add(line)
	s.ed.PickedSelection.Add(line)

	s.run("Transform.Move")
	s.click(0, 0)
	s.move(3.5, 4.25)
	if p := s.ed.Prompt(); p != "Second point: 3.50, 4.25" {
		t.Errorf("Prompt() = %q", p)
	}
	s.key(event.KSymEscape)
	s.finished()
}

func TestDrawLineClose(t *testing.T) {
	s := newSession(t)
	s.run("Draw.Line")
	s.click(0, 0)
	s.click(4, 0)
	s.enter("4,3")
	s.enter("c")
	s.finished()

	items := s.doc.Model.Items()
	if len(items) != 3 {
		t.Fatalf("Model.Len() = %d, want 3", len(items))
	}
	if !lineAt(items[2], geom.Pt(4, 3), geom.Pt(0, 0)) {
		t.Errorf("closing segment = %s", spew.Sdump(items[2]))
	}
}

func TestDrawCircleAndText(t *testing.T) {
	s := newSession(t)
	s.run("Draw.Circle")
	s.click(1, 1)
	s.move(1, 3)
	if s.doc.Jigged.Len() == 0 {
		t.Fatal("no radius preview")
	}
	s.enter("5")
	s.finished()

	s.run("Draw.Text")
	s.click(0, 0)
	s.enter("2.5")
	s.enter("hello world")
	s.finished()

	items := s.doc.Model.Items()
	if len(items) != 2 {
		t.Fatalf("Model.Len() = %d, want 2", len(items))
	}
	if c := items[0].(*drawable.Circle); c.Radius != 5 || !c.Center.Equal(geom.Pt(1, 1), 0) {
		t.Errorf("circle = %s", spew.Sdump(c))
	}
	if txt := items[1].(*drawable.Text); txt.Content != "hello world" || txt.Height != 2.5 {
		t.Errorf("text = %s", spew.Sdump(txt))
	}
}

func TestEditGrip(t *testing.T) {
	s := newSession(t)
	c := drawable.NewCircle(geom.Pt(0, 0), 1)
	l := drawable.NewLine(geom.Pt(10, 10), geom.Pt(20, 10))
	s.doc.Model.Add(c, l)

	// radius grip by id
	s.run("Edit.Grip", c.ID(), "1")
	s.move(0, 4)
	if s.doc.Jigged.Len() == 0 {
		t.Fatal("no grip preview")
	}
	if c.Radius != 1 {
		t.Error("preview changed the original")
	}
	s.enter("3")
	s.finished()
	if math.Abs(c.Radius-3) > 1e-9 {
		t.Errorf("Radius = %v, want 3", c.Radius)
	}

	// end grip picked by clicking near it
	s.run("Edit.Grip")
	s.click(20.5, 10)
	s.click(20, 15)
	s.finished()
	if !lineAt(l, geom.Pt(10, 10), geom.Pt(20, 15)) {
		t.Errorf("line = %v-%v", l.A, l.B)
	}
}

func TestEditGripBadArgs(t *testing.T) {
	s := newSession(t)
	s.run("Edit.Grip", "obj_missing", "0")
	if len(s.errs) != 1 {
		t.Fatalf("errors = %v", s.errs)
	}
	var ce *editor.CommandError
	if !errors.As(s.errs[0], &ce) || ce.Command != "Edit.Grip" {
		t.Errorf("error = %v", s.errs[0])
	}
}

func TestSaveOpen(t *testing.T) {
	store := &document.MemStore{}
	s := newSession(t, editor.WithStore(store))
	s.doc.Model.Add(drawable.NewLine(geom.Pt(0, 0), geom.Pt(3, 4)), drawable.NewText(geom.Pt(1, 1), "note", 2))

	s.run("Document.Save")
	s.enter("plan")
	s.finished()
	if s.doc.Name != "plan" {
		t.Errorf("Name = %q, want plan", s.doc.Name)
	}

	saved := s.doc.Model.Items()
	s.doc.Model.Clear()
	s.run("Document.Open", "plan")
	s.finished()

	items := s.doc.Model.Items()
	if len(items) != 2 || items[0].ID() != saved[0].ID() || items[1].Kind() != "text" {
		t.Errorf("opened model = %s", spew.Sdump(items))
	}

	s.run("Document.Open", "missing")
	if len(s.errs) != 1 || !errors.Is(s.errs[0], document.ErrNotFound) {
		t.Errorf("errors = %v, want ErrNotFound", s.errs)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	s := newSession(t)
	s.run("Document.Save", "x")
	if len(s.errs) != 1 || !errors.Is(s.errs[0], ErrNoStore) {
		t.Errorf("errors = %v", s.errs)
	}
}

func TestBuiltinNames(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{
		"Transform.Move", "Transform.Copy", "Transform.Rotate", "Transform.Scale", "Transform.Mirror",
		"Selection.Clear", "Edit.Grip", "Draw.Point", "Draw.Line", "Draw.Circle", "Draw.Rectangle",
		"Draw.Text", "Document.Save", "Document.Open",
	} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
}
