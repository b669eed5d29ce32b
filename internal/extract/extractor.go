// Package extract pulls actionable artifacts (payment handles, phone
// numbers, account tokens, links) out of message text. Extraction is a
// pure, idempotent function: candidates are pattern-matched, then each
// candidate passes a per-type validator or is discarded.
package extract

import (
	"regexp"
	"strings"

	"github.com/honeylab/scambait/internal/domain"
)

// upiProviders is the allow-list of payment-handle providers. A handle
// with any other suffix is not a valid candidate.
var upiProviders = []string{
	"upi", "paytm", "ybl", "oksbi", "okhdfcbank", "okicici", "okaxis",
	"okbizaxis", "ibl", "axl", "payzapp", "ikwik", "apl", "abf",
	"olamoney", "phonepe", "googlepay", "gpay", "amazonpay",
}

// shortenerDomains is the allow-list of link-shortening services whose
// bare paths count as links even without a scheme.
var shortenerDomains = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd", "buff.ly",
}

var (
	upiPattern = regexp.MustCompile(
		`(?i)\b[a-z0-9._-]{2,256}@(` + strings.Join(upiProviders, "|") + `)\b`)

	// Account tokens are only taken when introduced by an account cue,
	// never from a bare digit run.
	accountPattern = regexp.MustCompile(
		`(?i)(?:account(?:\s*(?:no|number))?|a/c|acc)[:.\s]*(\d{9,18})\b`)

	phonePattern = regexp.MustCompile(
		`(?:\+91[\s-]?)?0?(?:91)?[6-9]\d{9}\b`)

	urlPattern = regexp.MustCompile(
		`https?://[^\s<>"']+`)

	shortLinkPattern = regexp.MustCompile(
		`(?i)\b(?:` + strings.Join(escapeAll(shortenerDomains), "|") + `)/[a-zA-Z0-9]+\b`)

	digitsOnly = regexp.MustCompile(`\D`)
)

// keywordCategories groups the suspicious keywords reported alongside
// hard artifacts. Matching is plain substring on lowercased text.
var keywordCategories = map[string][]string{
	"urgency":   {"urgent", "immediately", "now", "today", "expire", "last chance"},
	"authority": {"bank", "rbi", "government", "police", "official", "authorized"},
	"action":    {"click", "verify", "update", "confirm", "share", "pay", "send"},
	"threat":    {"blocked", "suspended", "terminated", "disconnected", "penalty", "legal action"},
	"financial": {"upi", "account", "payment", "transfer", "fee", "charge", "refund"},
}

// keywordOrder fixes iteration order so extraction output is reproducible.
var keywordOrder = []string{"urgency", "authority", "action", "threat", "financial"}

// Extract scans text for all artifact types. Calling it twice on the
// same text yields the same result; merging into a session is a set
// union, so re-processing a turn never duplicates artifacts.
func Extract(text string) domain.Intelligence {
	intel := make(domain.Intelligence)
	if strings.TrimSpace(text) == "" {
		return intel
	}

	addAll(intel, domain.ArtifactUPIID, normalizeHandles(upiPattern.FindAllString(text, -1)))

	var accounts []string
	for _, m := range accountPattern.FindAllStringSubmatch(text, -1) {
		accounts = append(accounts, m[1])
	}
	addAll(intel, domain.ArtifactBankAccount, accounts)

	addAll(intel, domain.ArtifactPhone, normalizePhones(phonePattern.FindAllString(text, -1)))

	links := append([]string(nil), urlPattern.FindAllString(text, -1)...)
	for _, short := range shortLinkPattern.FindAllString(text, -1) {
		links = append(links, "https://"+short)
	}
	addAll(intel, domain.ArtifactLink, links)

	addAll(intel, domain.ArtifactKeyword, matchKeywords(text))

	return intel
}

func addAll(intel domain.Intelligence, typ domain.ArtifactType, values []string) {
	if len(values) == 0 {
		return
	}
	intel.Merge(domain.Intelligence{typ: values})
}

func normalizeHandles(handles []string) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, strings.ToLower(h))
	}
	return out
}

// normalizePhones reduces candidates to the +91 national form. Wrong
// digit counts and non-mobile prefixes are dropped, not surfaced.
func normalizePhones(candidates []string) []string {
	var out []string
	for _, c := range candidates {
		digits := digitsOnly.ReplaceAllString(c, "")
		digits = strings.TrimPrefix(digits, "0")
		if len(digits) > 10 && strings.HasPrefix(digits, "91") {
			digits = digits[2:]
		}
		if len(digits) != 10 || digits[0] < '6' || digits[0] > '9' {
			continue
		}
		out = append(out, "+91"+digits)
	}
	return out
}

func matchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, category := range keywordOrder {
		for _, kw := range keywordCategories[category] {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
	}
	return found
}

func escapeAll(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		out = append(out, regexp.QuoteMeta(d))
	}
	return out
}
