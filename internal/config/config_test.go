package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.StoreDriver != StoreMemory || cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("config = %s", spew.Sdump(cfg))
	}
	want := []string{"localhost:5173", "localhost:3000"}
	if got := cfg.OriginPatterns(); spew.Sdump(got) != spew.Sdump(want) {
		t.Errorf("OriginPatterns() = %v, want %v", got, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", " https://cad.example.com ,")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.StoreDriver != StoreSQLite || cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("config = %s", spew.Sdump(cfg))
	}
	if got := cfg.Origins(); len(got) != 1 || got[0] != "https://cad.example.com" {
		t.Errorf("Origins() = %v", got)
	}

	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Error("Load accepted an unknown store driver")
	}
}

func TestWatchSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"PickBoxSize":6}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := WatchSettings(ctx, path, func(data []byte) error {
		got <- string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if first := <-got; first != `{"PickBoxSize":6}` {
		t.Errorf("initial load = %q", first)
	}

	if err := os.WriteFile(path, []byte(`{"PickBoxSize":9}`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case data := <-got:
			if data == `{"PickBoxSize":9}` {
				return
			}
		case <-deadline:
			t.Fatal("change was not reported")
		}
	}
}
