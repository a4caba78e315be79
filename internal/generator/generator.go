// Package generator produces candidate marketing messages for a request.
// The heuristic implementation is pure template assembly over the corpus
// vocabulary and is always available; an external-service-backed
// implementation can be injected as an alternate source.
package generator

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"notif-insights-go/internal/scoring"
	"notif-insights-go/internal/types"
)

// Candidate is one generated message with its style label, heuristic
// predicted rate, and the reasoning behind it.
type Candidate struct {
	Style         string  `json:"style"`
	Message       string  `json:"message"`
	PredictedRate float64 `json:"predicted_click_rate"`
	Reasoning     string  `json:"reasoning"`
}

// CandidateGenerator is the capability interface for candidate sources.
// stats may be nil when no dataset has been analyzed yet.
type CandidateGenerator interface {
	Generate(ctx context.Context, req types.MessageRequest, stats *types.AggregateStatistics) ([]Candidate, error)
}

// StyleHighPerformance labels the candidate built from the historically
// best-performing message pattern.
const StyleHighPerformance = "high_performance"

var toneTemplates = map[string][]string{
	"promotional": {
		"🎉 {benefit} on {service}! {action}",
		"💰 Special offer! {benefit} - {action}",
		"Congratulations! {benefit} - {action}",
	},
	"urgent": {
		"⚡ Urgent! {benefit} - {action}",
		"🔥 Closing soon! {benefit} - {action}",
		"Today only! {benefit} - {action}",
	},
	"informational": {
		"Check the latest {service} terms",
		"{benefit} guide - {action}",
		"Confirm your {service} terms",
	},
	"empathetic": {
		"{problem}? There is a way out. {action}",
		"{problem}? {benefit} - {action}",
		"No more {problem}. {action}",
	},
}

var benefitTemplates = map[string][]string{
	"promotional":   {"up to 2% {type}", "special {type}", "double {type}"},
	"urgent":        {"limited {type}", "last-call {type}", "today-only {type}"},
	"informational": {"{type} details", "{type} info", "{type} terms"},
	"empathetic":    {"{type} relief", "an answer to your {type} worries", "a better {type}"},
}

var actionPhrases = map[string][]string{
	"promotional":   {"check it out now 👉", "get the benefit 💰", "apply and get rewarded"},
	"urgent":        {"hurry and confirm ⚡", "don't miss out", "apply right now"},
	"informational": {"see the details", "confirm the terms", "check the info"},
	"empathetic":    {"find a way out", "talk to us", "find your fit"},
}

var highPerfPatterns = []string{
	"(ad) check your {kw} and get {service}",
	"(ad) {service} {kw} - confirm now",
	"(ad) max {kw} {service} - apply today",
}

var problemPhrases = []string{
	"rate burden", "a limit that falls short", "loan worries", "interest burden",
}

// bonusKeywords mirror the scorer's high-performing vocabulary subset.
var bonusKeywords = []string{"benefit", "max", "discount"}

// Heuristic is the mandatory offline generator. Template selection is a
// stable hash of the request, so identical requests produce identical
// candidates.
type Heuristic struct {
	scorer *scoring.Scorer
}

func NewHeuristic(s *scoring.Scorer) *Heuristic {
	if s == nil {
		s = scoring.New(scoring.DefaultWeights())
	}
	return &Heuristic{scorer: s}
}

// Generate produces two or three labeled candidates: one in the requested
// tone, one from the high-performance pattern, and one in an alternative
// tone when it differs from the requested one.
func (h *Heuristic) Generate(_ context.Context, req types.MessageRequest, stats *types.AggregateStatistics) ([]Candidate, error) {
	tone := req.Tone
	if _, ok := toneTemplates[tone]; !ok {
		tone = "promotional"
	}

	candidates := []Candidate{
		h.byTone(req, tone, stats),
		h.highPerformance(req, stats),
	}
	if alt := alternativeTone(req, tone); alt != tone {
		candidates = append(candidates, h.byTone(req, alt, stats))
	}
	return candidates, nil
}

func (h *Heuristic) byTone(req types.MessageRequest, tone string, stats *types.AggregateStatistics) Candidate {
	service := req.Service
	if service == "" {
		service = "loan"
	}
	audience := req.TargetAudience
	if audience == "" {
		audience = "customer"
	}

	benefit := benefitPhrase(req.Keywords, tone)
	action := pick(actionPhrases[tone], service, tone, "action")
	problem := fmt.Sprintf("%s's %s", audience, pick(problemPhrases, service, audience))

	msg := strings.NewReplacer(
		"{service}", service,
		"{benefit}", benefit,
		"{action}", action,
		"{problem}", problem,
	).Replace(pick(toneTemplates[tone], service, tone))

	reasoning := fmt.Sprintf("%s style", tone)
	if len(req.Keywords) > 0 {
		reasoning += fmt.Sprintf(", reflecting keywords %s", strings.Join(req.Keywords, ", "))
	}
	reasoning += fmt.Sprintf(", written for %s", audience)

	return Candidate{
		Style:         tone,
		Message:       msg,
		PredictedRate: h.rate(msg, stats),
		Reasoning:     reasoning,
	}
}

func (h *Heuristic) highPerformance(req types.MessageRequest, stats *types.AggregateStatistics) Candidate {
	service := req.Service
	if service == "" {
		service = "loan"
	}

	kw := "benefit"
	for _, want := range req.Keywords {
		for _, bonus := range bonusKeywords {
			if strings.EqualFold(want, bonus) {
				kw = bonus
			}
		}
		if kw != "benefit" {
			break
		}
	}

	msg := strings.NewReplacer("{kw}", kw, "{service}", service).
		Replace(pick(highPerfPatterns, service, kw))

	reasoning := fmt.Sprintf("uses the high-performing keyword %q with a short structure, a clear call to action, and no emoji", kw)
	return Candidate{
		Style:         StyleHighPerformance,
		Message:       msg,
		PredictedRate: h.rate(msg, stats),
		Reasoning:     reasoning,
	}
}

func (h *Heuristic) rate(msg string, stats *types.AggregateStatistics) float64 {
	res, err := h.scorer.Score(msg, stats)
	if err != nil {
		return 0
	}
	return res.PredictedRate
}

func benefitPhrase(keywords []string, tone string) string {
	benefitType := "benefit"
	for _, kw := range keywords {
		switch strings.ToLower(kw) {
		case "rate":
			benefitType = "rate discount"
		case "limit":
			benefitType = "limit increase"
		case "points":
			benefitType = "points reward"
		default:
			continue
		}
		break
	}
	templates, ok := benefitTemplates[tone]
	if !ok {
		templates = benefitTemplates["promotional"]
	}
	return strings.ReplaceAll(pick(templates, tone, benefitType), "{type}", benefitType)
}

// alternativeTone suggests a second voice that historically suits the
// requested service.
func alternativeTone(req types.MessageRequest, current string) string {
	svc := strings.ToLower(req.Service)
	switch {
	case strings.Contains(svc, "credit score"):
		return "informational"
	case strings.Contains(svc, "refinance") || strings.Contains(svc, "switch"):
		return "empathetic"
	case strings.Contains(svc, "mortgage") || strings.Contains(svc, "housing"):
		return "promotional"
	case current != "urgent":
		return "urgent"
	default:
		return "promotional"
	}
}

// pick selects one item by a stable hash of the seed parts, keeping
// generation reproducible for identical requests.
func pick(items []string, seed ...string) string {
	h := fnv.New32a()
	for _, s := range seed {
		h.Write([]byte(s))
	}
	return items[int(h.Sum32())%len(items)]
}
