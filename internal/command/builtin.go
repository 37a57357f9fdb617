// Package command implements the built-in editor commands.
package command

import (
	"slices"

	"github.com/inamate/drafter/internal/editor"
)

// Builtin returns the descriptors of every built-in command.
func Builtin() []editor.Descriptor {
	return slices.Concat(transformCommands, drawCommands, editCommands, documentCommands)
}

// NewRegistry returns a registry holding the built-in commands.
func NewRegistry() *editor.Registry {
	reg, err := editor.NewRegistry(Builtin()...)
	if err != nil {
		// names are unique
		panic(err)
	}
	return reg
}
