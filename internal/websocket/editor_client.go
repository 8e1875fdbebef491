// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package websocket

import (
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/validation"
)

// channelEditor labels editor-socket connections in metrics.
const channelEditor = "editor"

// CommandSession is the part of an editor session driven over a socket.
type CommandSession interface {
	ID() string
	State() editor.State
	Apply(cmd editor.Command) (editor.State, error)
}

// EditorErrorData is sent when a command is rejected.
type EditorErrorData struct {
	Command editor.CommandType `json:"command"`
	Error   string             `json:"error"`
	State   editor.State       `json:"state"`
}

// EditorClient streams editor commands from one connection into a session and
// answers each with the resulting state.
//
// Pointer-move commands beyond the configured rate are not applied
// immediately. The most recent throttled move is kept and applied just before
// the next command that is let through, so a drag always ends where the
// pointer did.
type EditorClient struct {
	id      uint64
	session CommandSession
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter
	pending *editor.Command
}

// NewEditorClient binds conn to session.
func NewEditorClient(conn *websocket.Conn, session CommandSession, cfg *config.EditorConfig) *EditorClient {
	limit, burst := rate.Inf, 1
	if cfg != nil && cfg.PointerMoveRate > 0 {
		limit = rate.Limit(cfg.PointerMoveRate)
		burst = max(cfg.PointerMoveBurst, 1)
	}
	return &EditorClient{
		id:      clientIDCounter.Add(1),
		session: session,
		conn:    conn,
		send:    make(chan Message, sendBuffer),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Start begins reading and writing for the client.
func (c *EditorClient) Start() {
	metrics.WSConnections.WithLabelValues(channelEditor).Inc()
	logging.Info().
		Str("component", "editor-socket").
		Str("session_id", c.session.ID()).
		Uint64("client_id", c.id).
		Msg("editor socket connected")

	go writeLoop(c.conn, c.send)
	go c.readPump()
}

func (c *EditorClient) readPump() {
	defer func() {
		close(c.send)
		metrics.WSConnections.WithLabelValues(channelEditor).Dec()
		logging.Info().
			Str("component", "editor-socket").
			Str("session_id", c.session.ID()).
			Uint64("client_id", c.id).
			Msg("editor socket disconnected")
	}()

	readRawLoop(c.conn, c.handle)
}

// handle decodes and applies one frame.
func (c *EditorClient) handle(data []byte) {
	var cmd editor.Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		metrics.WSErrors.WithLabelValues("decode").Inc()
		c.reply(Message{Type: MessageTypeEditorError, Data: EditorErrorData{Error: "malformed command"}})
		return
	}
	if string(cmd.Type) == MessageTypePing {
		c.reply(Message{Type: MessageTypePong})
		return
	}
	if verr := validation.ValidateStruct(&cmd); verr != nil {
		metrics.EditorCommands.WithLabelValues(string(cmd.Type), "invalid").Inc()
		c.reply(Message{Type: MessageTypeEditorError, Data: EditorErrorData{
			Command: cmd.Type,
			Error:   verr.Error(),
			State:   c.session.State(),
		}})
		return
	}

	if cmd.IsPointerMove() {
		if !c.limiter.Allow() {
			pending := cmd
			c.pending = &pending
			metrics.EditorCommands.WithLabelValues(string(cmd.Type), "throttled").Inc()
			return
		}
		c.pending = nil
	} else {
		c.flushPending()
	}

	state, err := c.session.Apply(cmd)
	if err != nil {
		c.reply(Message{Type: MessageTypeEditorError, Data: EditorErrorData{
			Command: cmd.Type,
			Error:   err.Error(),
			State:   state,
		}})
		return
	}
	c.reply(Message{Type: MessageTypeEditorState, Data: state})
}

func (c *EditorClient) flushPending() {
	if c.pending == nil {
		return
	}
	cmd := *c.pending
	c.pending = nil
	if _, err := c.session.Apply(cmd); err != nil {
		logging.Debug().Err(err).Str("session_id", c.session.ID()).Msg("throttled pointer move rejected")
	}
}

// reply queues msg without blocking the read loop; a client that cannot keep
// up loses intermediate states.
func (c *EditorClient) reply(msg Message) {
	select {
	case c.send <- msg:
	default:
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
	}
}
