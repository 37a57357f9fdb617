package document

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/inamate/drafter/internal/drawable"
	"github.com/inamate/drafter/internal/geom"
)

func TestSceneNotifications(t *testing.T) {
	s := NewScene("test")
	var added, removed, cleared int
	s.Events.Add(SceneAddedEvId, func(ev any) { added += len(ev.(*SceneEvent).Items) })
	s.Events.Add(SceneRemovedEvId, func(any) { removed++ })
	s.Events.Add(SceneClearedEvId, func(any) { cleared++ })

	a := drawable.NewPoint(geom.Pt(0, 0))
	b := drawable.NewPoint(geom.Pt(1, 1))
	s.Add(a, b)
	s.Add(a)
	if s.Len() != 2 || added != 2 {
		t.Fatalf("Len() = %d, added = %d, want 2, 2", s.Len(), added)
	}
	if !s.Remove(a) || s.Remove(a) {
		t.Error("Remove() reported wrong membership")
	}
	s.Clear()
	s.Clear()
	if removed != 1 || cleared != 1 {
		t.Errorf("removed = %d, cleared = %d, want 1, 1", removed, cleared)
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings()
	if got := s.Int(SettingPickBoxSize); got != 6 {
		t.Errorf("PickBoxSize = %d, want 6", got)
	}
	if got := s.Int(SettingDisplayPrecision); got != 2 {
		t.Errorf("DisplayPrecision = %d, want 2", got)
	}
	if got := s.Color(SettingSelectionWindowColor); got != (color.RGBA{46, 116, 251, 64}) {
		t.Errorf("SelectionWindowColor = %v", got)
	}
	if got := s.Color(SettingJigColor); got != (color.RGBA{255, 165, 0, 255}) {
		t.Errorf("JigColor = %v", got)
	}
}

func TestSettingsSet(t *testing.T) {
	s := NewSettings()
	v := s.Version()
	if err := s.Set(SettingPickBoxSize, 10); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s.Int(SettingPickBoxSize) != 10 || s.Version() == v {
		t.Error("Set() did not apply")
	}
	if err := s.Set(SettingPickBoxSize, "big"); !errors.Is(err, ErrSettingType) {
		t.Errorf("Set(wrong type) error = %v, want ErrSettingType", err)
	}
	if err := s.Set("Nope", 1); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownSetting", err)
	}
}

func TestSettingsApplyJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"hex", `{"JigColor": "#ff000080", "PickBoxSize": 9}`, false},
		{"name", `{"JigColor": "red"}`, false},
		{"unknown key", `{"Foo": 1}`, true},
		{"bad color", `{"JigColor": "#zz"}`, true},
		{"bad int", `{"PickBoxSize": "x"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			err := s.ApplyJSON([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && s.Int(SettingPickBoxSize) != 6 {
				t.Error("failed ApplyJSON changed values")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#102030")
	if err != nil || c != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Errorf("ParseColor() = %v, %v", c, err)
	}
	if got := FormatColor(c); got != "#102030ff" {
		t.Errorf("FormatColor() = %q", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	doc := NewSampleDocument()
	if err := doc.Settings.Set(SettingPickBoxSize, 11); err != nil {
		t.Fatal(err)
	}
	snap, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var store MemStore
	ctx := context.Background()
	if err := store.Save(ctx, "sample", snap); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load(ctx, "sample")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := Decode(loaded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Model.Len() != doc.Model.Len() {
		t.Fatalf("Model.Len() = %d, want %d", got.Model.Len(), doc.Model.Len())
	}
	for i, want := range doc.Model.Items() {
		d := got.Model.Items()[i]
		if d.ID() != want.ID() || d.Kind() != want.Kind() {
			t.Errorf("object %d = %s %s, want %s %s", i, d.Kind(), d.ID(), want.Kind(), want.ID())
		}
		if d.Extents().String() != want.Extents().String() {
			t.Errorf("object %d extents = %v, want %v\n%s", i, d.Extents(), want.Extents(), spew.Sdump(d))
		}
	}
	if got.Settings.Int(SettingPickBoxSize) != 11 {
		t.Errorf("PickBoxSize = %d, want 11", got.Settings.Int(SettingPickBoxSize))
	}

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	names, _ := store.List(ctx)
	if len(names) != 1 || names[0] != "sample" {
		t.Errorf("List() = %v", names)
	}
}
