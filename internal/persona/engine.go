// Package persona selects the honeypot's next reply and advances the
// engagement state machine. Selection is deterministic: reply variety
// comes from a hash of the session id and turn count, never from
// wall-clock randomness, so identical state always produces the same reply.
package persona

import (
	"hash/fnv"
	"strings"

	"github.com/honeylab/scambait/internal/detect"
	"github.com/honeylab/scambait/internal/domain"
)

// Config carries the tunable policy knobs. The exact values are
// operator policy, not a contract.
type Config struct {
	// MaxTurns is the hard ceiling on counterparty turns.
	MaxTurns int
	// MinArtifactTypes is the intelligence-sufficiency threshold:
	// distinct entity artifact types needed before concluding early.
	MinArtifactTypes int
	// PressureThreshold is how many consecutive repeats of the same
	// demand shift the persona into hesitant pushback.
	PressureThreshold int
	// EngageThreshold is the minimum detector confidence to start engaging.
	EngageThreshold float64
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		MaxTurns:          15,
		MinArtifactTypes:  2,
		PressureThreshold: 3,
		EngageThreshold:   0.25,
	}
}

// Engine drives persona replies over the engagement state machine.
type Engine struct {
	cfg Config
}

// New creates a persona engine. Zero/negative knobs fall back to defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = def.MaxTurns
	}
	if cfg.MinArtifactTypes <= 0 {
		cfg.MinArtifactTypes = def.MinArtifactTypes
	}
	if cfg.PressureThreshold <= 0 {
		cfg.PressureThreshold = def.PressureThreshold
	}
	if cfg.EngageThreshold <= 0 {
		cfg.EngageThreshold = def.EngageThreshold
	}
	return &Engine{cfg: cfg}
}

// terminationCues end engagement when the counterparty disengages or
// turns abusive. Matched as substrings of the lowercased message.
var terminationCues = []string{
	"stop messaging", "stop calling", "leave me alone", "not interested",
	"wrong number", "waste of time", "bloody", "idiot", "stupid old",
}

var sensitiveCues = []string{"otp", "password", "pin", "cvv", "security code"}

// Respond picks the next reply for the session given the detector's view
// of the latest inbound message, and returns the state the session moves
// to. It never fails: any state, including an empty message, yields a
// valid in-persona reply.
func (e *Engine) Respond(s *domain.Session, det detect.Result) (string, domain.EngagementState) {
	seed := replySeed(s.ID, s.TurnCount)

	switch s.State {
	case domain.StateClosed:
		return closedReplies[0], domain.StateClosed

	case domain.StateConcluding:
		return pick(closingReplies, seed), domain.StateClosed

	case domain.StateNotStarted:
		if det.Confidence >= e.cfg.EngageThreshold {
			return pick(openerReplies, seed), domain.StateEngaging
		}
		return pick(neutralReplies, seed), domain.StateNotStarted

	default: // Engaging or Suspicious
		latest := strings.ToLower(lastInboundText(s))

		if containsAny(latest, terminationCues) {
			return pick(winddownReplies, seed), domain.StateConcluding
		}
		if s.TurnCount >= e.cfg.MaxTurns || s.Intelligence.TypesPresent() >= e.cfg.MinArtifactTypes {
			return pick(closingReplies, seed), domain.StateClosed
		}
		if s.State == domain.StateSuspicious || s.PressureStreak >= e.cfg.PressureThreshold {
			return pick(suspicionReplies, seed), domain.StateSuspicious
		}
		return e.engagingReply(s, det, latest, seed), domain.StateEngaging
	}
}

// engagingReply chooses a strategy for an active engagement: deflect
// credential requests, elicit whichever artifact types are still missing,
// otherwise rotate through the stalling strategies.
func (e *Engine) engagingReply(s *domain.Session, det detect.Result, latest string, seed uint32) string {
	if containsAny(latest, sensitiveCues) {
		return pick(sensitiveReplies, seed)
	}

	if det.Category != domain.CategoryNone {
		if missing := missingArtifactTypes(s.Intelligence); len(missing) > 0 {
			target := missing[s.TurnCount%len(missing)]
			return pick(elicitBank(target), seed)
		}
	}

	rotation := [][]string{confusionReplies, clarifyReplies, stallReplies, suspicionReplies}
	return pick(rotation[s.TurnCount%len(rotation)], seed)
}

func missingArtifactTypes(intel domain.Intelligence) []domain.ArtifactType {
	var missing []domain.ArtifactType
	for _, typ := range domain.EntityArtifactTypes {
		if len(intel[typ]) == 0 {
			missing = append(missing, typ)
		}
	}
	return missing
}

func elicitBank(typ domain.ArtifactType) []string {
	switch typ {
	case domain.ArtifactUPIID:
		return elicitUPIReplies
	case domain.ArtifactPhone:
		return elicitPhoneReplies
	case domain.ArtifactLink:
		return elicitLinkReplies
	case domain.ArtifactBankAccount:
		return elicitAccountReplies
	default:
		return confusionReplies
	}
}

func lastInboundText(s *domain.Session) string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Sender == domain.SenderScammer {
			return s.History[i].Text
		}
	}
	return ""
}

func containsAny(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// replySeed derives the selection seed from session identity and turn
// count so replies vary across a conversation but replay identically.
func replySeed(sessionID string, turn int) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return h.Sum32() + uint32(turn)*2654435761
}

func pick(bank []string, seed uint32) string {
	return bank[int(seed%uint32(len(bank)))]
}
