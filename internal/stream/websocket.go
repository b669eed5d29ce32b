// Package stream provides a WebSocket channel for live conversations:
// the same turn payloads as POST /detect, exchanged over one connection,
// used for interactive probing of the honeypot.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/honeylab/scambait/internal/domain"
	"github.com/honeylab/scambait/internal/identity"
	"github.com/honeylab/scambait/internal/orchestrator"
)

// turnFrame is one inbound frame on the conversation channel.
type turnFrame struct {
	SessionID string `json:"sessionId"`
	Message   struct {
		Sender    string `json:"sender"`
		Text      string `json:"text"`
		Timestamp int64  `json:"timestamp"`
	} `json:"message"`
}

// errorFrame is sent back when a frame cannot be processed.
type errorFrame struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Handler upgrades connections and relays turns to the orchestrator.
type Handler struct {
	orch           *orchestrator.Orchestrator
	allowedOrigins []string
}

// NewHandler creates a conversation-channel handler.
func NewHandler(orch *orchestrator.Orchestrator, allowedOrigins []string) *Handler {
	return &Handler{orch: orch, allowedOrigins: allowedOrigins}
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Info("conversation channel request", "ip", identity.IPFromRequest(r))

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.allowedOrigins,
	})
	if err != nil {
		slog.Error("failed to accept conversation channel", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "conversation ended"); closeErr != nil {
			slog.Debug("failed to close conversation channel", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.readLoop(ctx, ws)
}

func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("conversation channel closed by client")
			} else {
				slog.Warn("conversation channel read error", "error", err)
			}
			return
		}

		var frame turnFrame
		if err := json.Unmarshal(data, &frame); err != nil || !identity.ValidSessionID(frame.SessionID) {
			h.writeJSON(ctx, ws, errorFrame{Status: "error", Error: "malformed turn frame"})
			continue
		}

		msg := domain.Message{
			Sender: domain.Sender(frame.Message.Sender),
			Text:   frame.Message.Text,
		}
		if frame.Message.Timestamp > 0 {
			msg.Timestamp = time.UnixMilli(frame.Message.Timestamp)
		}

		reply := h.orch.HandleTurn(ctx, frame.SessionID, msg, nil)
		if err := h.writeJSON(ctx, ws, reply); err != nil {
			slog.Warn("conversation channel write error", "error", err)
			return
		}
	}
}

func (h *Handler) writeJSON(ctx context.Context, ws *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
