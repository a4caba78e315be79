package matcher

import (
	"strings"

	"notif-insights-go/internal/types"
)

// Rule tables for free-text request parsing. Scanned in order; first hit
// wins where a single value is extracted.
var (
	knownServices = []string{"credit loan", "mortgage", "rent loan", "credit score", "refinance"}

	requestKeywords = []string{"rate", "limit", "benefit", "discount", "points", "compare", "switch"}

	urgentCues      = []string{"urgent", "hurry", "quickly", "asap"}
	empatheticCues  = []string{"worry", "burden", "struggle"}
	informationCues = []string{"info", "guide", "confirm"}

	knownAudiences = []string{"office worker", "homemaker", "self-employed"}
)

// ParseRequest turns a free-text description into a structured request
// using rule-based extraction. Unrecognized aspects fall back to the
// defaults the generator expects: promotional tone, a generic audience.
func ParseRequest(text string) types.MessageRequest {
	lower := strings.ToLower(text)

	req := types.MessageRequest{
		Tone:           "promotional",
		TargetAudience: "customer",
		Description:    text,
	}

	for _, svc := range knownServices {
		if strings.Contains(lower, svc) {
			req.Service = svc
			break
		}
	}

	for _, kw := range requestKeywords {
		if strings.Contains(lower, kw) {
			req.Keywords = append(req.Keywords, kw)
		}
	}

	switch {
	case containsAny(lower, urgentCues):
		req.Tone = "urgent"
	case containsAny(lower, empatheticCues):
		req.Tone = "empathetic"
	case containsAny(lower, informationCues):
		req.Tone = "informational"
	}

	for _, aud := range knownAudiences {
		if strings.Contains(lower, aud) {
			req.TargetAudience = aud
			break
		}
	}

	return req
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
