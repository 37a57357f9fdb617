package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/inamate/drafter/internal/document"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "drawings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSaveLoad(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	snap, err := document.Encode(document.NewSampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "plan", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load(ctx, "plan")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Objects) != len(snap.Objects) || got.Name != snap.Name {
		t.Errorf("Load() = %d objects named %q, want %d named %q", len(got.Objects), got.Name, len(snap.Objects), snap.Name)
	}

	// Saving again replaces the row.
	empty, err := document.Encode(document.New("plan"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "plan", empty); err != nil {
		t.Fatal(err)
	}
	got, err = s.Load(ctx, "plan")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Objects) != 0 {
		t.Errorf("after overwrite Load() has %d objects, want 0", len(got.Objects))
	}
}

func TestSQLiteMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for _, name := range []string{"b", "a", "c"} {
		snap, err := document.Encode(document.New(name))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Save(ctx, name, snap); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !slices.Equal(names, []string{"a", "b", "c"}) {
		t.Errorf("List() = %v", names)
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawings.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := document.Encode(document.NewSampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "kept", snap); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Load(ctx, "kept"); err != nil {
		t.Errorf("Load() after reopen error = %v", err)
	}
}

func TestPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	p, err := NewPostgres(ctx, url)
	if err != nil {
		t.Fatalf("NewPostgres() error = %v", err)
	}
	defer p.Close()

	snap, err := document.Encode(document.NewSampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Save(ctx, "pg-test", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := p.Load(ctx, "pg-test"); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := p.Load(ctx, "pg-test-missing"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Load() missing error = %v, want ErrNotFound", err)
	}
}
