// Package detect classifies inbound messages into scam categories using
// a static marker catalog. Detection is a pure function of the text.
package detect

import (
	"regexp"
	"strings"

	"github.com/honeylab/scambait/internal/domain"
)

// Marker class weights. They sum to 1.0 so a message hitting all three
// classes of a category scores the maximum attainable confidence.
const (
	urgencyWeight   = 0.3
	authorityWeight = 0.3
	actionWeight    = 0.4
)

// loneClassDamping halves the score when fewer than two marker classes
// match, keeping single-keyword hits below the engagement threshold.
const loneClassDamping = 0.5

// SignalFlags records which marker classes matched for the winning category.
type SignalFlags struct {
	Urgency   bool
	Authority bool
	Action    bool
}

// Classes returns how many marker classes matched.
func (f SignalFlags) Classes() int {
	n := 0
	if f.Urgency {
		n++
	}
	if f.Authority {
		n++
	}
	if f.Action {
		n++
	}
	return n
}

// Result is the outcome of classifying one message.
type Result struct {
	Category   domain.ScamCategory
	Confidence float64
	Signals    SignalFlags
	Hits       int
}

// Detect classifies text into a scam category with a confidence in [0,1].
// Empty or unmatched text yields CategoryNone with confidence 0. The
// category with the highest raw pattern-hit count wins; ties go to the
// earlier catalog entry.
func Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Category: domain.CategoryNone}
	}
	lower := strings.ToLower(text)

	best := Result{Category: domain.CategoryNone}
	for _, rule := range catalog {
		urgency := countHits(rule.urgency, lower)
		authority := countHits(rule.authority, lower)
		action := countHits(rule.action, lower)
		hits := urgency + authority + action
		if hits == 0 || hits <= best.Hits {
			continue
		}
		best = Result{
			Category: rule.category,
			Hits:     hits,
			Signals: SignalFlags{
				Urgency:   urgency > 0,
				Authority: authority > 0,
				Action:    action > 0,
			},
		}
	}

	if best.Hits == 0 {
		return Result{Category: domain.CategoryNone}
	}
	best.Confidence = confidence(best.Signals)
	return best
}

func confidence(f SignalFlags) float64 {
	score := 0.0
	if f.Urgency {
		score += urgencyWeight
	}
	if f.Authority {
		score += authorityWeight
	}
	if f.Action {
		score += actionWeight
	}
	if f.Classes() < 2 {
		score *= loneClassDamping
	}
	if score > 1 {
		score = 1
	}
	return score
}

func countHits(patterns []*regexp.Regexp, lower string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(lower) {
			n++
		}
	}
	return n
}
