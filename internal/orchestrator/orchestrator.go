// Package orchestrator coordinates one conversation turn: it serializes
// access to the session, drives the detector, extractor, and persona
// engine in sequence, and hands off the final report when a conversation
// concludes. A turn always produces a reply — component failures degrade
// to an in-persona fallback rather than surfacing to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeylab/scambait/internal/detect"
	"github.com/honeylab/scambait/internal/domain"
	"github.com/honeylab/scambait/internal/extract"
	"github.com/honeylab/scambait/internal/persona"
	"github.com/honeylab/scambait/internal/report"
	"github.com/honeylab/scambait/internal/session"
)

// Reply is the outbound turn response returned to the transport layer.
type Reply struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

const (
	// StatusSuccess is the only status the core emits: internal failures
	// still produce a well-formed reply.
	StatusSuccess = "success"

	// fallbackReply keeps the persona alive when a component misbehaves
	// or the turn deadline expires.
	fallbackReply = "Sorry beta, my phone is acting up again. What were you saying?"

	// closedSessionReply is the fixed response for turns arriving after
	// a conversation has closed. Closed sessions are never reopened.
	closedSessionReply = "This number is not in use anymore. Please do not message here."

	// dispatchTimeout bounds the report hand-off, which runs outside the
	// session lock.
	dispatchTimeout = time.Minute
)

// Orchestrator processes inbound turns for all sessions.
type Orchestrator struct {
	sessions    *session.Store
	engine      *persona.Engine
	sink        report.Sink // nil disables the hand-off
	turnTimeout time.Duration
}

// New wires the orchestrator. sink may be nil when reporting is disabled.
func New(sessions *session.Store, engine *persona.Engine, sink report.Sink, turnTimeout time.Duration) *Orchestrator {
	if turnTimeout <= 0 {
		turnTimeout = 5 * time.Second
	}
	return &Orchestrator{
		sessions:    sessions,
		engine:      engine,
		sink:        sink,
		turnTimeout: turnTimeout,
	}
}

// HandleTurn processes one inbound message for sessionID and returns the
// persona's reply. seed holds platform-provided prior messages and is
// applied only when the session is unseen. Turns for the same session
// are strictly serialized; turns for different sessions run
// independently. The per-session lock is released before the
// final-report hand-off so a slow reporting endpoint cannot stall the
// conversation pipeline.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID string, msg domain.Message, seed []domain.Message) Reply {
	ctx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	now := time.Now()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}

	unlock := o.sessions.Lock(sessionID)

	s := o.sessions.Get(sessionID)
	if s == nil {
		s = domain.NewSession(sessionID, now)
		s.SeedHistory(seed)
		slog.Info("session created", "session_id", sessionID, "seeded_messages", len(seed))
	}

	if s.State == domain.StateClosed {
		unlock()
		slog.Debug("turn for closed session rejected", "session_id", sessionID)
		return Reply{Status: StatusSuccess, Reply: closedSessionReply}
	}

	s.RecordInbound(msg, now)

	replyText, next := o.advance(ctx, s, msg.Text)

	prev := s.State
	s.State = next
	s.RecordReply(replyText, time.Now())
	o.sessions.Upsert(s)

	var rep *domain.FinalReport
	if next == domain.StateClosed && !s.Finalized {
		s.Finalized = true
		rep = buildReport(s)
	}
	unlock()

	if prev != next {
		slog.Info("engagement state changed",
			"session_id", sessionID,
			"from", prev.String(),
			"to", next.String(),
			"turn", s.TurnCount)
	}

	if rep != nil && o.sink != nil {
		go o.dispatch(rep)
	}

	return Reply{Status: StatusSuccess, Reply: replyText}
}

// advance runs the detector, extractor, and persona engine for one turn.
// A panic in any component or an expired turn deadline degrades to the
// fallback reply with the engagement state left unchanged.
func (o *Orchestrator) advance(ctx context.Context, s *domain.Session, text string) (replyText string, next domain.EngagementState) {
	replyText, next = fallbackReply, s.State
	defer func() {
		if r := recover(); r != nil {
			slog.Error("turn pipeline panic, using fallback reply",
				"session_id", s.ID, "panic", fmt.Sprint(r))
			replyText, next = fallbackReply, s.State
		}
	}()

	if ctx.Err() != nil {
		return replyText, next
	}
	det := detect.Detect(text)
	if det.Confidence > s.Confidence {
		s.Category = det.Category
		s.Confidence = det.Confidence
		slog.Info("scam signal detected",
			"session_id", s.ID,
			"category", string(det.Category),
			"confidence", det.Confidence)
	}

	if ctx.Err() != nil {
		return replyText, next
	}
	s.Intelligence.Merge(extract.Extract(text))

	// Repeated demands of the same flavor count as pressure; anything
	// else resets the streak.
	if det.Signals.Action && det.Category != domain.CategoryNone && det.Category == s.Category {
		s.PressureStreak++
	} else {
		s.PressureStreak = 0
	}

	if ctx.Err() != nil {
		return replyText, next
	}
	return o.engine.Respond(s, det)
}

func (o *Orchestrator) dispatch(rep *domain.FinalReport) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := o.sink.Submit(ctx, rep); err != nil {
		slog.Error("final report hand-off failed",
			"report_id", rep.ReportID,
			"session_id", rep.SessionID,
			"error", err)
	}
}

// buildReport snapshots the session under the lock so the hand-off can
// run safely after release.
func buildReport(s *domain.Session) *domain.FinalReport {
	intel := s.Intelligence.Clone()
	return &domain.FinalReport{
		ReportID:               uuid.NewString(),
		SessionID:              s.ID,
		ScamDetected:           s.Category != domain.CategoryNone,
		Category:               s.Category,
		TotalMessagesExchanged: s.TurnCount,
		ExtractedIntelligence:  intel.Summarize(),
		AgentNotes:             agentNotes(s),
		History:                append([]domain.Message(nil), s.History...),
		CreatedAt:              time.Now(),
	}
}

func agentNotes(s *domain.Session) string {
	notes := fmt.Sprintf("Scam type: %s. Engagement duration: %d turns. Artifacts collected: %d.",
		s.Category, s.TurnCount, s.Intelligence.EntityCount())
	if n := len(s.Intelligence[domain.ArtifactUPIID]); n > 0 {
		notes += fmt.Sprintf(" Extracted %d UPI IDs.", n)
	}
	if n := len(s.Intelligence[domain.ArtifactLink]); n > 0 {
		notes += fmt.Sprintf(" Detected %d phishing links.", n)
	}
	notes += " Agent maintained elderly persona throughout."
	return notes
}
