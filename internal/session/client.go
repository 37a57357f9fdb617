package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/editor"
	"github.com/inamate/drafter/internal/engine"
	"github.com/inamate/drafter/internal/event"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

var ErrUnknownMessage = errors.New("unknown message type")

// Client is one websocket connection with its own drawing engine. Input
// messages are applied to the engine in arrival order on the read goroutine.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	sendMu      sync.RWMutex
	sendClosed  bool
	UserID      string
	DisplayName string
	Drawing     string
	ClientID    string
	SessionID   string

	mu              sync.Mutex
	engine          *engine.Engine
	settingsSent    *document.Settings
	settingsVersion uint64
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, displayName, drawing, clientID, sessionID string) *Client {
	c := &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		UserID:      userID,
		DisplayName: displayName,
		Drawing:     drawing,
		ClientID:    clientID,
		SessionID:   sessionID,
	}
	c.engine = engine.NewEngine(hub.engineOptions()...)
	c.engine.Events.Add(editor.PromptEvId, func(ev any) {
		c.sendPayload(TypePrompt, PromptPayload{Text: ev.(*editor.PromptEvent).Text})
	})
	c.engine.Events.Add(editor.ErrorEvId, func(ev any) {
		err := ev.(*editor.ErrorEvent).Err
		p := ErrorPayload{Message: err.Error()}
		var ce *editor.CommandError
		if errors.As(err, &ce) {
			p.Command = ce.Command
		}
		c.sendPayload(TypeError, p)
	})
	c.engine.Events.Add(editor.CommandEndedEvId, func(ev any) {
		e := ev.(*editor.CommandEvent)
		p := CommandEndedPayload{Name: e.Name}
		if e.Err != nil {
			p.Error = e.Err.Error()
		}
		c.sendPayload(TypeCommandEnded, p)
	})
	return c
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			continue
		}

		msg.UserID = c.UserID
		msg.ClientID = c.ClientID
		msg.SessionID = c.SessionID

		c.hub.handleMessage(ctx, c, &msg)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.sendClosed {
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

// closeSend ends WritePump. Later sends are dropped.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

func (c *Client) sendPayload(typ string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", typ)
		return
	}
	c.Send(&Message{Type: typ, SessionID: c.SessionID, Payload: data})
}

func mods(m Modifiers) event.KeyModifiers {
	var km event.KeyModifiers
	if m.Shift {
		km |= event.ModShift
	}
	if m.Ctrl {
		km |= event.ModCtrl
	}
	if m.Alt {
		km |= event.ModAlt
	}
	return km
}

// apply feeds one input message to the engine. The caller holds c.mu.
func (c *Client) apply(ctx context.Context, msg *Message) error {
	decode := func(v any) error {
		if err := json.Unmarshal(msg.Payload, v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
		}
		return nil
	}

	eng := c.engine
	switch msg.Type {
	case TypePointerMove, TypePointerClick:
		var p PointerPayload
		if err := decode(&p); err != nil {
			return err
		}
		if msg.Type == TypePointerMove {
			eng.PointerMove(p.X, p.Y, mods(p.Modifiers))
		} else {
			eng.PointerClick(p.X, p.Y, p.Button, mods(p.Modifiers))
		}
	case TypeKeyDown:
		var p KeyPayload
		if err := decode(&p); err != nil {
			return err
		}
		eng.KeyDown(p.Key, mods(p.Modifiers))
	case TypeKeyPress:
		var p KeyPayload
		if err := decode(&p); err != nil {
			return err
		}
		for _, r := range p.Key {
			eng.KeyPress(r)
		}
	case TypeCommandRun:
		var p CommandPayload
		if err := decode(&p); err != nil {
			return err
		}
		// Failures are already reported through the engine's error events.
		_ = eng.RunCommand(ctx, p.Name, p.Args...)
	case TypeViewPan:
		var p PanPayload
		if err := decode(&p); err != nil {
			return err
		}
		eng.Pan(p.DX, p.DY)
	case TypeViewZoom:
		var p ZoomPayload
		if err := decode(&p); err != nil {
			return err
		}
		eng.Zoom(p.Factor, p.X, p.Y)
	case TypeViewResize:
		var p ResizePayload
		if err := decode(&p); err != nil {
			return err
		}
		eng.Resize(p.Width, p.Height)
	case TypeViewExtents:
		eng.ZoomExtents()
	case TypeSettings:
		return eng.ApplySettings(msg.Payload)
	case TypeDocLoad:
		return eng.LoadDocument(msg.Payload)
	case TypeDocSample:
		eng.LoadSample()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// sync sends the frame and, when they changed, the document settings. The
// caller holds c.mu.
func (c *Client) sync() {
	c.Send(&Message{Type: TypeFrame, SessionID: c.SessionID, Payload: json.RawMessage(c.engine.Render())})

	settings := c.engine.Document().Settings
	if v := settings.Version(); settings != c.settingsSent || v != c.settingsVersion {
		c.settingsSent, c.settingsVersion = settings, v
		data, err := settings.MarshalJSON()
		if err != nil {
			slog.Error("marshal settings", "error", err)
			return
		}
		c.Send(&Message{Type: TypeSettingsSync, SessionID: c.SessionID, Payload: data})
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Close()
}
