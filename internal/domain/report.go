package domain

import "time"

// IntelligenceSummary is the wire form of extracted artifacts in the
// final report, grouped the way the reporting endpoint expects them.
type IntelligenceSummary struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// FinalReport is the structured summary handed off to the external
// reporting endpoint when a conversation concludes.
type FinalReport struct {
	ReportID               string              `json:"-"`
	SessionID              string              `json:"sessionId"`
	ScamDetected           bool                `json:"scamDetected"`
	Category               ScamCategory        `json:"-"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  IntelligenceSummary `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
	History                []Message           `json:"-"`
	CreatedAt              time.Time           `json:"-"`
}

// Summarize converts the per-type artifact map into the report wire form.
// Nil slices become empty so the payload always carries every group.
func (i Intelligence) Summarize() IntelligenceSummary {
	return IntelligenceSummary{
		BankAccounts:       nonNil(i[ArtifactBankAccount]),
		UPIIDs:             nonNil(i[ArtifactUPIID]),
		PhishingLinks:      nonNil(i[ArtifactLink]),
		PhoneNumbers:       nonNil(i[ArtifactPhone]),
		SuspiciousKeywords: nonNil(i[ArtifactKeyword]),
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// ReportRecord is the archived form of a dispatched report.
type ReportRecord struct {
	ReportID    string
	SessionID   string
	Category    ScamCategory
	TurnCount   int
	PayloadJSON string
	Delivered   bool
	CreatedAt   time.Time
}
