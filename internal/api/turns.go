package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/honeylab/scambait/internal/domain"
	"github.com/honeylab/scambait/internal/identity"
	"github.com/honeylab/scambait/internal/voice"
)

// maxRequestBodySize caps inbound turn payloads (1MB).
const maxRequestBodySize = 1 << 20

// wireMessage is the transport form of a conversation message.
// Timestamps travel as epoch milliseconds.
type wireMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func (m wireMessage) toDomain() domain.Message {
	msg := domain.Message{
		Sender: domain.Sender(m.Sender),
		Text:   m.Text,
	}
	// A missing or garbage timestamp is recovered downstream with a
	// safe default, never rejected.
	if m.Timestamp > 0 {
		msg.Timestamp = time.UnixMilli(m.Timestamp)
	}
	return msg
}

// turnRequest is the inbound turn payload from the messaging platform.
type turnRequest struct {
	SessionID           string        `json:"sessionId"`
	Message             wireMessage   `json:"message"`
	ConversationHistory []wireMessage `json:"conversationHistory"`
	Metadata            *turnMetadata `json:"metadata"`
}

// turnMetadata is channel context, passed through for logging only.
type turnMetadata struct {
	Channel  string `json:"channel"`
	Language string `json:"language"`
	Locale   string `json:"locale"`
}

// voiceRequest is the inbound voice-authenticity payload.
type voiceRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

// TurnHandler handles conversation and voice endpoints.
type TurnHandler struct {
	*Handler
}

// NewTurnHandler creates the conversation endpoint handler.
func NewTurnHandler(base *Handler) *TurnHandler {
	return &TurnHandler{Handler: base}
}

// RegisterRoutes registers the conversation routes.
func (h *TurnHandler) RegisterRoutes(r chi.Router) {
	r.Post("/detect", h.HandleTurn)
	r.Post("/detect-voice", h.HandleVoice)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions/{id}", h.GetSession)
	})
}

// HandleTurn processes one inbound message and returns the persona reply.
func (h *TurnHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if !identity.ValidSessionID(req.SessionID) {
		Error(w, http.StatusBadRequest, "sessionId is malformed")
		return
	}

	if req.Metadata != nil {
		slog.Debug("turn received",
			"session_id", req.SessionID,
			"channel", req.Metadata.Channel,
			"language", req.Metadata.Language,
			"locale", req.Metadata.Locale)
	}

	var seed []domain.Message
	for _, m := range req.ConversationHistory {
		seed = append(seed, m.toDomain())
	}

	reply := h.orch.HandleTurn(r.Context(), req.SessionID, req.Message.toDomain(), seed)
	JSON(w, http.StatusOK, reply)
}

// HandleVoice scores an audio clip for synthetic generation.
func (h *TurnHandler) HandleVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize*8)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.AudioBase64 == "" {
		Error(w, http.StatusBadRequest, "audioBase64 is required")
		return
	}

	JSON(w, http.StatusOK, voice.Analyze(req.AudioBase64, req.AudioFormat))
}

// GetSession returns a read-only snapshot of a session for operators.
// The snapshot is built under the per-session lock: turns mutate the
// same object, so an unlocked read would race with active traffic.
func (h *TurnHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unlock := h.sessions.Lock(id)
	s := h.sessions.Get(id)
	if s == nil {
		unlock()
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	snapshot := map[string]interface{}{
		"session_id":       s.ID,
		"state":            s.State.String(),
		"turn_count":       s.TurnCount,
		"inbound_messages": s.InboundCount(),
		"category":         string(s.Category),
		"confidence":       s.Confidence,
		"intelligence":     s.Intelligence.Clone().Summarize(),
		"created_at":       s.CreatedAt,
		"last_activity_at": s.LastActivityAt,
	}
	unlock()

	JSON(w, http.StatusOK, snapshot)
}
