// Package domain defines the core types shared across the honeypot.
package domain

import (
	"strings"
	"time"
)

// Sender identifies who produced a message in a conversation.
type Sender string

const (
	// SenderScammer marks messages from the counterparty.
	SenderScammer Sender = "scammer"
	// SenderAgent marks messages produced by the honeypot persona.
	SenderAgent Sender = "user"
)

// Message is a single message in the conversation.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// EngagementState tracks where the persona is in the conversation lifecycle.
type EngagementState int

const (
	StateNotStarted EngagementState = iota
	StateEngaging
	StateSuspicious
	StateConcluding
	StateClosed
)

// String returns the wire/log name of the state.
func (s EngagementState) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateEngaging:
		return "ENGAGING"
	case StateSuspicious:
		return "SUSPICIOUS"
	case StateConcluding:
		return "CONCLUDING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ScamCategory classifies the fraud scheme the counterparty is running.
type ScamCategory string

const (
	CategoryNone        ScamCategory = "NONE"
	CategoryUPIFraud    ScamCategory = "UPI_FRAUD"
	CategoryKYCFraud    ScamCategory = "KYC_FRAUD"
	CategoryElectricity ScamCategory = "ELECTRICITY_SCAM"
	CategoryCourier     ScamCategory = "COURIER_SCAM"
	CategoryJob         ScamCategory = "JOB_SCAM"
	CategoryLottery     ScamCategory = "LOTTERY_PRIZE"
)

// ArtifactType identifies a kind of extracted intelligence.
type ArtifactType string

const (
	ArtifactUPIID       ArtifactType = "upiIds"
	ArtifactBankAccount ArtifactType = "bankAccounts"
	ArtifactPhone       ArtifactType = "phoneNumbers"
	ArtifactLink        ArtifactType = "phishingLinks"
	ArtifactKeyword     ArtifactType = "suspiciousKeywords"
)

// EntityArtifactTypes are the artifact types that count toward the
// intelligence-sufficiency threshold. Keywords are context, not entities.
var EntityArtifactTypes = []ArtifactType{
	ArtifactUPIID,
	ArtifactBankAccount,
	ArtifactPhone,
	ArtifactLink,
}

// Intelligence holds extracted artifacts grouped by type. Values are
// stored in insertion order and deduplicated on their lowercased form.
type Intelligence map[ArtifactType][]string

// Merge unions other into i. Re-merging the same artifacts is a no-op,
// so re-processing a turn never duplicates values.
func (i Intelligence) Merge(other Intelligence) {
	for typ, values := range other {
		seen := make(map[string]struct{}, len(i[typ]))
		for _, v := range i[typ] {
			seen[strings.ToLower(v)] = struct{}{}
		}
		for _, v := range values {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			i[typ] = append(i[typ], v)
		}
	}
}

// EntityCount returns the total number of entity artifacts collected.
func (i Intelligence) EntityCount() int {
	n := 0
	for _, typ := range EntityArtifactTypes {
		n += len(i[typ])
	}
	return n
}

// TypesPresent returns how many distinct entity artifact types have at
// least one value.
func (i Intelligence) TypesPresent() int {
	n := 0
	for _, typ := range EntityArtifactTypes {
		if len(i[typ]) > 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, safe to hand off after the session lock is
// released.
func (i Intelligence) Clone() Intelligence {
	out := make(Intelligence, len(i))
	for typ, values := range i {
		out[typ] = append([]string(nil), values...)
	}
	return out
}

// Session is the state of one ongoing conversation with a counterparty.
// All mutation happens under the session store's per-session lock.
type Session struct {
	ID             string
	TurnCount      int
	History        []Message
	State          EngagementState
	Category       ScamCategory
	Confidence     float64
	Intelligence   Intelligence
	PressureStreak int
	Finalized      bool
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// NewSession creates a fresh session for an unseen session id.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		State:          StateNotStarted,
		Category:       CategoryNone,
		Intelligence:   make(Intelligence),
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// SeedHistory preloads platform-provided prior messages into a fresh
// session. Counterparty messages count toward the turn ceiling; replies
// already attributed to the persona are kept as-is.
func (s *Session) SeedHistory(msgs []Message) {
	for _, m := range msgs {
		if m.Sender != SenderAgent {
			m.Sender = SenderScammer
			s.TurnCount++
		}
		s.History = append(s.History, m)
	}
}

// RecordInbound appends a counterparty message and advances the turn
// count. The activity clock uses server time: platform timestamps stay
// in the history but are never trusted for idleness decisions.
func (s *Session) RecordInbound(msg Message, now time.Time) {
	msg.Sender = SenderScammer
	s.History = append(s.History, msg)
	s.TurnCount++
	s.LastActivityAt = now
}

// RecordReply appends the persona's reply to the history.
func (s *Session) RecordReply(text string, at time.Time) {
	s.History = append(s.History, Message{Sender: SenderAgent, Text: text, Timestamp: at})
}

// InboundCount returns the number of counterparty messages in the history.
func (s *Session) InboundCount() int {
	n := 0
	for _, m := range s.History {
		if m.Sender == SenderScammer {
			n++
		}
	}
	return n
}
