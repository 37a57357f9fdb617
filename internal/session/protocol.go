package session

import "encoding/json"

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Input (client → server)
	TypePointerMove  = "pointer.move"
	TypePointerClick = "pointer.click"
	TypeKeyDown      = "key.down"
	TypeKeyPress     = "key.press"
	TypeCommandRun   = "command.run"
	TypeViewPan      = "view.pan"
	TypeViewZoom     = "view.zoom"
	TypeViewResize   = "view.resize"
	TypeViewExtents  = "view.extents"
	TypeSettings     = "settings.apply"
	TypeDocLoad      = "doc.load"
	TypeDocSample    = "doc.sample"

	// Output (server → client)
	TypeWelcome      = "welcome"
	TypePrompt       = "prompt"
	TypeError        = "error"
	TypeFrame        = "frame"
	TypeCommandEnded = "command.ended"
	TypeSettingsSync = "settings.sync"

	// Presence
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Ctrl  bool `json:"ctrl,omitempty"`
	Alt   bool `json:"alt,omitempty"`
}

// PointerPayload is a canvas position in pixels. Button is the DOM button
// index and only used by pointer.click.
type PointerPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Modifiers
}

// KeyPayload carries a DOM KeyboardEvent.key for key.down or the typed
// character for key.press.
type KeyPayload struct {
	Key string `json:"key"`
	Modifiers
}

type CommandPayload struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

type PanPayload struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type ZoomPayload struct {
	Factor float64 `json:"factor"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type WelcomePayload struct {
	SessionID string   `json:"sessionId"`
	ClientID  string   `json:"clientId"`
	Drawing   string   `json:"drawing"`
	Commands  []string `json:"commands"`
}

type PromptPayload struct {
	Text string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Command string `json:"command,omitempty"`
}

type CommandEndedPayload struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	Command     string     `json:"command,omitempty"`
	Prompt      string     `json:"prompt,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

// CursorPos is in world coordinates so it is meaningful to other viewers.
type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}
