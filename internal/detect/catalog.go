package detect

import (
	"regexp"

	"github.com/honeylab/scambait/internal/domain"
)

// categorySpec declares one scam category as three marker groups.
// Patterns are matched against lowercased text, so they are written in
// lowercase. Declaration order in the catalog breaks score ties.
type categorySpec struct {
	category  domain.ScamCategory
	urgency   []string
	authority []string
	action    []string
}

// catalogSpec is the rule data. It is compiled once at process start;
// nothing mutates it afterwards.
var catalogSpec = []categorySpec{
	{
		category: domain.CategoryUPIFraud,
		urgency: []string{
			`\bimmediately\b`, `\burgent(ly)?\b`, `\btoday\b`, `\bright now\b`,
			`\bwithin \d+ (hours?|minutes?)\b`, `\blast chance\b`,
		},
		authority: []string{
			`\bbank\b`, `\brbi\b`, `\bcustomer (care|support)\b`, `\bofficial\b`, `\bhelpline\b`,
		},
		action: []string{
			`\bsend(ing)?\s+(money|payment|amount|rs)\b`, `\btransfer\b`, `\bpay(ment)?\b`,
			`@(upi|paytm|ybl|oksbi|okhdfcbank|okicici|okaxis|phonepe|gpay|googlepay|amazonpay)\b`,
			`\bverify\b`, `\bupi\s*(id|pin|number)\b`, `\bverification fee\b`,
		},
	},
	{
		category: domain.CategoryKYCFraud,
		urgency: []string{
			`\bblocked\b`, `\bsuspended\b`, `\bexpir(e|ed|y|ing)\b`, `\bdeadline\b`,
			`\bwithin 24 hours\b`,
		},
		authority: []string{
			`\bbank\b`, `\brbi\b`, `\bincome tax\b`, `\bgovernment\b`, `\bcyber (cell|police)\b`,
		},
		action: []string{
			`\bkyc\b`, `\bverify\b`, `\bupdate\b`, `\baadhaar\b`, `\bpan (card|number)\b`,
			`\bshare\b.*\bdetails\b`,
		},
	},
	{
		category: domain.CategoryElectricity,
		urgency: []string{
			`\bdisconnect(ed|ion)?\b`, `\btonight\b`, `\btoday\b`, `\bwithin \d+ (hours?|minutes?)\b`,
		},
		authority: []string{
			`\belectricity (board|office|department)\b`, `\bpower (company|supply)\b`,
			`\bbill(ing)? department\b`,
		},
		action: []string{
			`\bpay\b.*\bbill\b`, `\boverdue\b`, `\bupdate\b.*\bmeter\b`, `\brecharge\b`,
		},
	},
	{
		category: domain.CategoryCourier,
		urgency: []string{
			`\bheld\b`, `\bfinal notice\b`, `\btoday\b`, `\bdelivery (pending|failed)\b`,
		},
		authority: []string{
			`\bcustoms?\b`, `\b(fedex|dhl|aramex|bluedart|india post)\b`, `\bcourier\b`,
		},
		action: []string{
			`\bcustoms? (duty|fee|clearance)\b`, `\bpay\b.*\bfee\b`, `\bclick\b`,
			`\bconfirm\b.*\baddress\b`, `\btracking (link|number)\b`,
		},
	},
	{
		category: domain.CategoryJob,
		urgency: []string{
			`\blimited (slots|seats|time)\b`, `\bapply (now|today)\b`, `\bimmediately\b`,
		},
		authority: []string{
			`\bhr (team|department|manager)\b`, `\b(amazon|flipkart) (hiring|recruitment)\b`,
			`\brecruit(er|ment)\b`,
		},
		action: []string{
			`\bregistration fee\b`, `\bearn\b`, `\bpart[- ]?time\b`, `\bwork from home\b`,
			`\bsend\b.*\bresume\b`,
		},
	},
	{
		category: domain.CategoryLottery,
		urgency: []string{
			`\bclaim (now|today|immediately)\b`, `\bexpir(e|es|ing)\b`, `\blast chance\b`,
		},
		authority: []string{
			`\blottery (board|department|company)\b`, `\bkbc\b`, `\bofficial\b`, `\bprize committee\b`,
		},
		action: []string{
			`\bcongratulations?\b`, `\bwon\b`, `\bwinner\b`, `\bclaim\b.*\b(prize|reward)\b`,
			`\bprocessing fee\b`, `\blucky draw\b`,
		},
	},
}

type categoryRule struct {
	category  domain.ScamCategory
	urgency   []*regexp.Regexp
	authority []*regexp.Regexp
	action    []*regexp.Regexp
}

var catalog = compileCatalog(catalogSpec)

func compileCatalog(specs []categorySpec) []categoryRule {
	rules := make([]categoryRule, 0, len(specs))
	for _, spec := range specs {
		rules = append(rules, categoryRule{
			category:  spec.category,
			urgency:   compileAll(spec.urgency),
			authority: compileAll(spec.authority),
			action:    compileAll(spec.action),
		})
	}
	return rules
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
