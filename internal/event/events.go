// Package event defines the pointer and keyboard events relayed from the
// view into the editor.
package event

import (
	"strings"

	"github.com/inamate/drafter/internal/geom"
)

// Event ids used with evreg.
const (
	CursorMoveEvId = iota
	CursorClickEvId
	KeyDownEvId
	KeyPressEvId
)

// CursorMove reports a pointer move. Screen is in pixels; World is filled in
// by the editor from its view before handlers run.
type CursorMove struct {
	Screen geom.Point2D
	World  geom.Point2D
	Mods   KeyModifiers
}

type CursorClick struct {
	Screen geom.Point2D
	World  geom.Point2D
	Button MouseButton
	Mods   KeyModifiers
}

// KeyDown carries non-character keys such as Enter, Escape and Backspace.
type KeyDown struct {
	KeySym KeySym
	Mods   KeyModifiers
}

// KeyPress carries a typed character.
type KeyPress struct {
	Rune rune
}

// Id returns the evreg id for ev, or -1 when ev is not an input event.
func Id(ev any) int {
	switch ev.(type) {
	case *CursorMove:
		return CursorMoveEvId
	case *CursorClick:
		return CursorClickEvId
	case *KeyDown:
		return KeyDownEvId
	case *KeyPress:
		return KeyPressEvId
	}
	return -1
}

type MouseButton int32

const (
	ButtonNone MouseButton = iota
	ButtonLeft MouseButton = 1 << (iota - 1)
	ButtonMiddle
	ButtonRight
)

// ParseButton maps the DOM MouseEvent.button index to a MouseButton.
func ParseButton(i int) MouseButton {
	switch i {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonMiddle
	case 2:
		return ButtonRight
	}
	return ButtonNone
}

type KeyModifiers uint32

const (
	ModNone  KeyModifiers = 0
	ModShift KeyModifiers = 1 << (iota - 1)
	ModCtrl
	ModAlt
)

func (km KeyModifiers) HasAny(m KeyModifiers) bool {
	return km&m > 0
}

type KeySym int

const (
	KSymNone KeySym = iota
	KSymReturn
	KSymEscape
	KSymSpace
	KSymBackspace
	KSymDelete
	KSymTab
)

var keyNames = map[string]KeySym{
	"enter":     KSymReturn,
	"return":    KSymReturn,
	"escape":    KSymEscape,
	"esc":       KSymEscape,
	" ":         KSymSpace,
	"space":     KSymSpace,
	"backspace": KSymBackspace,
	"delete":    KSymDelete,
	"tab":       KSymTab,
}

// ParseKeySym maps a DOM KeyboardEvent.key name to a KeySym.
func ParseKeySym(name string) KeySym {
	if ks, ok := keyNames[strings.ToLower(name)]; ok {
		return ks
	}
	return KSymNone
}

func (ks KeySym) String() string {
	switch ks {
	case KSymReturn:
		return "Enter"
	case KSymEscape:
		return "Escape"
	case KSymSpace:
		return "Space"
	case KSymBackspace:
		return "Backspace"
	case KSymDelete:
		return "Delete"
	case KSymTab:
		return "Tab"
	}
	return "None"
}
