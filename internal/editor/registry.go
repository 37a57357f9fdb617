package editor

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Command is one run of a registered command. Apply may suspend in the
// editor's getters any number of times.
type Command interface {
	Apply(ctx context.Context, ed *Editor, args []string) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(ctx context.Context, ed *Editor, args []string) error

func (f CommandFunc) Apply(ctx context.Context, ed *Editor, args []string) error {
	return f(ctx, ed, args)
}

// Descriptor registers a command under Name. New returns a fresh Command for
// each run.
type Descriptor struct {
	Name        string
	DisplayName string
	New         func() Command
}

// Registry maps command names to descriptors. Names are matched ignoring
// case.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Descriptor
}

func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{cmds: make(map[string]Descriptor)}
	for _, d := range descs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" || d.New == nil {
		return fmt.Errorf("registering command %q: name and constructor are required", d.Name)
	}
	key := strings.ToLower(d.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cmds[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, d.Name)
	}
	r.cmds[key] = d
	return nil
}

func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.cmds[strings.ToLower(name)]
	return d, ok
}

// Descriptors returns every registered command sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Collect(maps.Values(r.cmds))
	slices.SortFunc(out, func(a, b Descriptor) int { return strings.Compare(a.Name, b.Name) })
	return out
}
