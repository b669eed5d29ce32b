package persona

import (
	"testing"
	"time"

	"github.com/honeylab/scambait/internal/detect"
	"github.com/honeylab/scambait/internal/domain"
)

func newTestSession(state domain.EngagementState, turns int) *domain.Session {
	s := domain.NewSession("sess-1", time.Now())
	s.State = state
	s.TurnCount = turns
	return s
}

func scamResult() detect.Result {
	return detect.Result{
		Category:   domain.CategoryUPIFraud,
		Confidence: 0.7,
		Signals:    detect.SignalFlags{Urgency: true, Authority: true, Action: true},
	}
}

func inBank(bank []string, reply string) bool {
	for _, line := range bank {
		if line == reply {
			return true
		}
	}
	return false
}

func TestRespondEngagesOnFirstScamMessage(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateNotStarted, 1)
	s.History = append(s.History, domain.Message{Sender: domain.SenderScammer, Text: "your account is blocked"})

	reply, next := e.Respond(s, scamResult())
	if next != domain.StateEngaging {
		t.Fatalf("expected ENGAGING, got %s", next)
	}
	if !inBank(openerReplies, reply) {
		t.Fatalf("expected an opening confusion reply, got %q", reply)
	}
}

func TestRespondStaysNeutralOnTrivialConfidence(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateNotStarted, 1)

	reply, next := e.Respond(s, detect.Result{Category: domain.CategoryNone})
	if next != domain.StateNotStarted {
		t.Fatalf("expected NOT_STARTED, got %s", next)
	}
	if reply == "" {
		t.Fatal("expected a valid reply even without engagement")
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	det := scamResult()

	first, firstState := e.Respond(newTestSession(domain.StateNotStarted, 1), det)
	for i := 0; i < 5; i++ {
		reply, state := e.Respond(newTestSession(domain.StateNotStarted, 1), det)
		if reply != first || state != firstState {
			t.Fatalf("selection not reproducible: %q/%s vs %q/%s", reply, state, first, firstState)
		}
	}
}

func TestRespondClosesAtTurnCeiling(t *testing.T) {
	t.Parallel()

	e := New(Config{MaxTurns: 15, MinArtifactTypes: 2, PressureThreshold: 3, EngageThreshold: 0.25})
	s := newTestSession(domain.StateEngaging, 15)
	s.Category = domain.CategoryUPIFraud

	reply, next := e.Respond(s, scamResult())
	if next != domain.StateClosed {
		t.Fatalf("expected CLOSED at ceiling, got %s", next)
	}
	if !inBank(closingReplies, reply) {
		t.Fatalf("expected a disengagement line, got %q", reply)
	}
}

func TestRespondClosesOnIntelligenceSufficiency(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 4)
	s.Intelligence.Merge(domain.Intelligence{
		domain.ArtifactUPIID: {"fraud@paytm"},
		domain.ArtifactLink:  {"https://bit.ly/x1"},
	})

	_, next := e.Respond(s, scamResult())
	if next != domain.StateClosed {
		t.Fatalf("expected CLOSED once two artifact types are held, got %s", next)
	}
}

func TestRespondShiftsToSuspiciousUnderPressure(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 5)
	s.PressureStreak = 3

	reply, next := e.Respond(s, scamResult())
	if next != domain.StateSuspicious {
		t.Fatalf("expected SUSPICIOUS, got %s", next)
	}
	if !inBank(suspicionReplies, reply) {
		t.Fatalf("expected hesitant pushback, got %q", reply)
	}
}

func TestRespondWindsDownOnTerminationCue(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 6)
	s.History = append(s.History, domain.Message{Sender: domain.SenderScammer, Text: "stop messaging me, this is a waste of time"})

	reply, next := e.Respond(s, detect.Result{Category: domain.CategoryNone})
	if next != domain.StateConcluding {
		t.Fatalf("expected CONCLUDING, got %s", next)
	}
	if !inBank(winddownReplies, reply) {
		t.Fatalf("expected a wind-down reply, got %q", reply)
	}

	// The next turn in CONCLUDING closes the conversation.
	s.State = domain.StateConcluding
	s.TurnCount++
	reply, next = e.Respond(s, detect.Result{Category: domain.CategoryNone})
	if next != domain.StateClosed {
		t.Fatalf("expected CLOSED after concluding, got %s", next)
	}
	if !inBank(closingReplies, reply) {
		t.Fatalf("expected a closing line, got %q", reply)
	}
}

func TestRespondElicitsMissingArtifacts(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 2)
	s.Category = domain.CategoryUPIFraud
	s.Intelligence.Merge(domain.Intelligence{domain.ArtifactUPIID: {"fraud@paytm"}})

	// Missing, in order: bankAccounts, phoneNumbers, phishingLinks.
	// Turn 2 targets the third missing type.
	reply, next := e.Respond(s, scamResult())
	if next != domain.StateEngaging {
		t.Fatalf("expected ENGAGING, got %s", next)
	}
	if !inBank(elicitLinkReplies, reply) {
		t.Fatalf("expected a link elicitation, got %q", reply)
	}
}

func TestRespondHandlesEmptyMessage(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 3)
	s.History = append(s.History, domain.Message{Sender: domain.SenderScammer, Text: ""})

	reply, next := e.Respond(s, detect.Result{Category: domain.CategoryNone})
	if reply == "" {
		t.Fatal("expected a valid reply for empty message")
	}
	if next == domain.StateClosed {
		t.Fatalf("empty message must not close the session, got %s", next)
	}
}

func TestRespondDeflectsCredentialRequests(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	s := newTestSession(domain.StateEngaging, 2)
	s.History = append(s.History, domain.Message{Sender: domain.SenderScammer, Text: "share the OTP you just received"})

	reply, _ := e.Respond(s, scamResult())
	if !inBank(sensitiveReplies, reply) {
		t.Fatalf("expected a credential deflection, got %q", reply)
	}
}
