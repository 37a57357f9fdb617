package session

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// viewers remembers the presence last published for each client of a room.
// Input that leaves a client's presence as it was, such as panning its view,
// is not broadcast again.
type viewers struct {
	mu   sync.Mutex
	last map[string]*PresencePayload // clientID -> presence
}

func newViewers() *viewers {
	return &viewers{last: make(map[string]*PresencePayload)}
}

// publish records p and reports whether it differs from what the room saw
// last from clientID.
func (v *viewers) publish(clientID string, p *PresencePayload) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if prev, ok := v.last[clientID]; ok && prev.equal(p) {
		return false
	}
	v.last[clientID] = p
	return true
}

func (v *viewers) remove(clientID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.last, clientID)
}

func (v *viewers) stateMessage() *Message {
	v.mu.Lock()
	payload, err := json.Marshal(PresenceStatePayload{Presences: maps.Clone(v.last)})
	v.mu.Unlock()
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{Type: TypePresenceState, Payload: payload}
}

func (p *PresencePayload) equal(q *PresencePayload) bool {
	if (p.Cursor == nil) != (q.Cursor == nil) {
		return false
	}
	if p.Cursor != nil && *p.Cursor != *q.Cursor {
		return false
	}
	return p.Command == q.Command &&
		p.Prompt == q.Prompt &&
		p.DisplayName == q.DisplayName &&
		slices.Equal(p.Selection, q.Selection)
}

// presence describes what this client's editor is doing: where the cursor
// is, which command runs, what it asks for and what is selected. The caller
// holds c.mu.
func (c *Client) presence() *PresencePayload {
	ed := c.engine.Editor()
	cur := ed.Cursor()
	p := &PresencePayload{
		Cursor:      &CursorPos{X: cur.X, Y: cur.Y},
		DisplayName: c.DisplayName,
		Command:     ed.ActiveCommand(),
		Prompt:      ed.Prompt(),
	}
	var ids []string
	if err := json.Unmarshal([]byte(c.engine.GetSelection()), &ids); err == nil {
		p.Selection = ids
	}
	return p
}
