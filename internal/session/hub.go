// Package session serves drawing sessions over websockets. Every connection
// gets its own engine; connections on the same drawing share presence.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/engine"
)

const loadTimeout = 5 * time.Second

// Room groups the clients viewing one drawing.
type Room struct {
	drawing  string
	clients  map[string]*Client // clientID -> client
	viewers  *viewers
}

func NewRoom(drawing string) *Room {
	return &Room{
		drawing:  drawing,
		clients:  make(map[string]*Client),
		viewers:  newViewers(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // drawing -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	store    document.Store
	settings json.RawMessage // server-wide overrides applied to every drawing
}

// NewHub creates a hub whose engines persist drawings in store, which may be
// nil.
func NewHub(store document.Store) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		store:      store,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop ends Run and aborts the running command of every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		for _, c := range h.allClients() {
			c.close()
		}
	})
}

func (h *Hub) engineOptions() []engine.Option {
	if h.store == nil {
		return nil
	}
	return []engine.Option{engine.WithStore(h.store)}
}

// ApplySettings validates data as a settings object and applies it to every
// open drawing and to drawings opened later.
func (h *Hub) ApplySettings(data []byte) error {
	if err := document.NewSettings().ApplyJSON(data); err != nil {
		return err
	}
	h.mu.Lock()
	h.settings = slices.Clone(data)
	h.mu.Unlock()

	for _, c := range h.allClients() {
		c.mu.Lock()
		if err := c.engine.ApplySettings(data); err != nil {
			slog.Warn("apply settings", "error", err, "client", c.ClientID)
		}
		c.sync()
		c.mu.Unlock()
	}
	return nil
}

func (h *Hub) serverSettings() json.RawMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings
}

// applyServerSettings re-applies the server overrides after the client's
// document was replaced. The caller holds c.mu.
func (h *Hub) applyServerSettings(c *Client) {
	if s := h.serverSettings(); len(s) > 0 {
		if err := c.engine.ApplySettings(s); err != nil {
			slog.Warn("apply settings", "error", err, "client", c.ClientID)
		}
	}
}

// open loads the client's drawing from the store, if it exists, and greets
// the client.
func (h *Hub) open(c *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.store != nil && c.Drawing != "" {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		snap, err := h.store.Load(ctx, c.Drawing)
		cancel()
		switch {
		case err == nil:
			if err := c.engine.LoadSnapshot(snap); err != nil {
				slog.Error("load drawing", "error", err, "drawing", c.Drawing)
			} else {
				c.engine.Document().Name = c.Drawing
				c.engine.ZoomExtents()
			}
		case !errors.Is(err, document.ErrNotFound):
			slog.Error("load drawing", "error", err, "drawing", c.Drawing)
		}
	}
	h.applyServerSettings(c)

	var commands []string
	for _, d := range c.engine.Editor().Registry().Descriptors() {
		commands = append(commands, d.Name)
	}
	c.sendPayload(TypeWelcome, WelcomePayload{
		SessionID: c.SessionID,
		ClientID:  c.ClientID,
		Drawing:   c.Drawing,
		Commands:  commands,
	})
	c.sync()
}

func (h *Hub) addClient(client *Client) {
	h.open(client)

	h.mu.Lock()
	room, ok := h.rooms[client.Drawing]
	if !ok {
		room = NewRoom(client.Drawing)
		h.rooms[client.Drawing] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Send current presence state to new client
	stateMsg := room.viewers.stateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:     TypePresenceJoin,
		UserID:   client.UserID,
		ClientID: client.ClientID,
		Payload:  joinPayload,
	}
	h.broadcastToRoom(client.Drawing, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "drawing", client.Drawing, "session", client.SessionID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.Drawing]
	if !ok || room.clients[client.ClientID] != client {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.closeSend()
	room.viewers.remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.Drawing)
	}
	h.mu.Unlock()

	client.close()

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:     TypePresenceLeave,
		UserID:   client.UserID,
		ClientID: client.ClientID,
		Payload:  leavePayload,
	}
	h.broadcastToRoom(client.Drawing, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "drawing", client.Drawing, "session", client.SessionID)
}

func (h *Hub) handleMessage(ctx context.Context, sender *Client, msg *Message) {
	if msg.Type == TypePresenceUpdate {
		h.handlePresenceUpdate(sender, msg)
		return
	}

	sender.mu.Lock()
	err := sender.apply(ctx, msg)
	if msg.Type == TypeDocLoad || msg.Type == TypeDocSample {
		h.applyServerSettings(sender)
	}
	sender.sync()
	presence := sender.presence()
	sender.mu.Unlock()

	if err != nil {
		slog.Warn("input rejected", "error", err, "type", msg.Type, "client", sender.ClientID)
		sender.sendPayload(TypeError, ErrorPayload{Message: err.Error()})
	}
	h.publishPresence(sender, presence)
}

// handlePresenceUpdate relays presence sent by the client itself, such as
// a display name change.
func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName
	h.publishPresence(sender, &presence)
}

func (h *Hub) publishPresence(sender *Client, presence *PresencePayload) {
	h.mu.RLock()
	room, ok := h.rooms[sender.Drawing]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if !room.viewers.publish(sender.ClientID, presence) {
		return
	}

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:     TypePresenceUpdate,
		UserID:   sender.UserID,
		ClientID: sender.ClientID,
		Payload:  outPayload,
	}
	h.broadcastToRoom(sender.Drawing, outMsg, sender.ClientID)
}

func (h *Hub) allClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []*Client
	for _, room := range h.rooms {
		for _, c := range room.clients {
			out = append(out, c)
		}
	}
	return out
}

func (h *Hub) broadcastToRoom(drawing string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[drawing]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
