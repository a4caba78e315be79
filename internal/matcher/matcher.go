// Package matcher scores historical records against a message request and
// returns a ranked, explained top-N.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"notif-insights-go/internal/features"
	"notif-insights-go/internal/types"
)

const (
	// scoreCutoff excludes weak matches entirely.
	scoreCutoff = 0.3
	// defaultLimit caps the ranked result list.
	defaultLimit = 5
)

// Additive score contributions. Checks are independent; the reason list
// follows this order for determinism.
const (
	weightKeyword     = 0.3
	weightTone        = 0.4
	weightUrgency     = 0.2
	weightBenefit     = 0.2
	weightPerformance = 0.1

	// performanceFloor is the click rate above which a record earns the
	// performance bonus.
	performanceFloor = 10.0
)

// Result is one ranked match with its supporting evidence.
type Result struct {
	Message   string   `json:"message"`
	Score     float64  `json:"score"`
	ClickRate float64  `json:"click_rate"`
	Service   string   `json:"service"`
	Reasons   []string `json:"reasons"`
}

// Match scores every record against the request and returns at most
// Limit (default 5) results above the cutoff, sorted by (score, clickRate)
// descending with input order as the final tiebreak.
func Match(records []types.NotificationRecord, req types.MessageRequest) ([]Result, error) {
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", types.ErrInvalidRequest, req.Limit)
	}
	limit := req.Limit
	if limit == 0 || limit > defaultLimit {
		limit = defaultLimit
	}

	var results []Result
	for _, rec := range records {
		if req.Service != "" && !strings.Contains(rec.Service, req.Service) {
			continue
		}
		fs := features.Extract(rec.MessageText)
		score, reasons := scoreAgainst(fs, rec, req)
		if score <= scoreCutoff {
			continue
		}
		results = append(results, Result{
			Message:   rec.MessageText,
			Score:     score,
			ClickRate: rec.ClickRate,
			Service:   rec.Service,
			Reasons:   reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ClickRate > results[j].ClickRate
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreAgainst(fs features.FeatureSet, rec types.NotificationRecord, req types.MessageRequest) (float64, []string) {
	score := 0.0
	var reasons []string

	if len(req.Keywords) > 0 {
		matched := overlap(fs.Keywords, req.Keywords)
		if len(matched) > 0 {
			score += weightKeyword * float64(len(matched))
			reasons = append(reasons, fmt.Sprintf("keyword match: %s", strings.Join(matched, ", ")))
		}
	}

	if req.Tone != "" && features.Tone(req.Tone) == fs.Tone {
		score += weightTone
		reasons = append(reasons, fmt.Sprintf("tone match: %s", fs.Tone))
	}

	if levelOrNone(req.Urgency) == fs.UrgencyLevel {
		score += weightUrgency
		reasons = append(reasons, fmt.Sprintf("urgency level match: %s", fs.UrgencyLevel))
	}

	if levelOrNone(req.BenefitLevel) == fs.BenefitLevel {
		score += weightBenefit
		reasons = append(reasons, fmt.Sprintf("benefit level match: %s", fs.BenefitLevel))
	}

	if rec.ClickRate > performanceFloor {
		score += weightPerformance
		reasons = append(reasons, fmt.Sprintf("high-performance message (click rate %.1f%%)", rec.ClickRate))
	}

	if len(reasons) == 0 {
		reasons = []string{"general pattern match"}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}

func levelOrNone(s string) features.Level {
	if s == "" {
		return features.LevelNone
	}
	return features.Level(s)
}

func overlap(found, wanted []string) []string {
	set := make(map[string]bool, len(found))
	for _, kw := range found {
		set[strings.ToLower(kw)] = true
	}
	var matched []string
	for _, kw := range wanted {
		if set[strings.ToLower(kw)] {
			matched = append(matched, kw)
		}
	}
	return matched
}
