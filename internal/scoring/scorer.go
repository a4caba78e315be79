// Package scoring implements the deterministic predicted-click-rate
// heuristic. The formula is an explainable linear rule, not a model: a
// fixed base plus bonuses and penalties derived from the message features,
// clamped to a plausible range.
package scoring

import (
	"fmt"
	"strings"

	"notif-insights-go/internal/features"
	"notif-insights-go/internal/types"
)

// Weights are the named constants of the score formula. Zero-value fields
// are not meaningful; use DefaultWeights and override selectively.
type Weights struct {
	Base          float64
	KeywordBonus  float64 // per bonus keyword found
	EmojiPenalty  float64 // subtracted when any emoji present
	LengthBonus   float64 // length in [LengthMin, LengthMax]
	LengthPenalty float64 // length > LengthOver
	UrgencyBonus  float64 // urgency level high
	LengthMin     int
	LengthMax     int
	LengthOver    int
	MinRate       float64
	MaxRate       float64
}

// DefaultWeights returns the calibrated constants. These values are a
// behavioral contract; change them only deliberately.
func DefaultWeights() Weights {
	return Weights{
		Base:          8.5,
		KeywordBonus:  2,
		EmojiPenalty:  2,
		LengthBonus:   1,
		LengthPenalty: 1,
		UrgencyBonus:  1,
		LengthMin:     30,
		LengthMax:     50,
		LengthOver:    60,
		MinRate:       3.0,
		MaxRate:       20.0,
	}
}

// bonusKeywords are the vocabulary keywords that historically outperform;
// each distinct hit adds KeywordBonus.
var bonusKeywords = []string{"benefit", "max", "discount"}

// Result carries the predicted rate, the extracted features it was derived
// from, and a human-readable factor breakdown.
type Result struct {
	PredictedRate float64             `json:"predicted_click_rate"`
	Features      features.FeatureSet `json:"features"`
	Factors       map[string]string   `json:"factors"`
}

// Scorer scores message texts. It is stateless apart from its weights and
// safe for concurrent use.
type Scorer struct {
	w Weights
}

func New(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Score computes the predicted click rate for a message. It is a pure
// function of the text (and, when provided, the aggregate statistics used
// only to annotate the keyword factor with corpus evidence). Empty text is
// rejected as an invalid request.
func (s *Scorer) Score(text string, stats *types.AggregateStatistics) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("%w: empty message text", types.ErrInvalidRequest)
	}

	fs := features.Extract(text)

	bonusHits := intersect(fs.Keywords, bonusKeywords)
	keywordBonus := s.w.KeywordBonus * float64(len(bonusHits))

	emojiPenalty := 0.0
	if fs.HasEmoji {
		emojiPenalty = -s.w.EmojiPenalty
	}

	lengthScore := 0.0
	switch {
	case fs.Length >= s.w.LengthMin && fs.Length <= s.w.LengthMax:
		lengthScore = s.w.LengthBonus
	case fs.Length > s.w.LengthOver:
		lengthScore = -s.w.LengthPenalty
	}

	urgencyBonus := 0.0
	if fs.UrgencyLevel == features.LevelHigh {
		urgencyBonus = s.w.UrgencyBonus
	}

	rate := s.w.Base + keywordBonus + emojiPenalty + lengthScore + urgencyBonus
	rate = clamp(rate, s.w.MinRate, s.w.MaxRate)

	factors := map[string]string{
		"keywords": fmt.Sprintf("+%.0f%% (bonus keywords: %s)", keywordBonus, strings.Join(bonusHits, ", ")),
		"emoji":    "0% (text only)",
		"length":   fmt.Sprintf("%+.0f%% (length %d)", lengthScore, fs.Length),
		"urgency":  "0% (regular)",
	}
	if len(bonusHits) == 0 {
		factors["keywords"] = "+0% (no bonus keywords)"
	}
	if fs.HasEmoji {
		factors["emoji"] = fmt.Sprintf("%.0f%% (emoji present)", emojiPenalty)
	}
	if urgencyBonus > 0 {
		factors["urgency"] = fmt.Sprintf("+%.0f%% (high urgency)", urgencyBonus)
	}
	if stats != nil {
		for _, kw := range bonusHits {
			if ks, ok := stats.PerKeyword[kw]; ok {
				factors["corpus_"+kw] = fmt.Sprintf("corpus avg %.1f%% over %d messages", ks.AvgClickRate, ks.Count)
			}
		}
	}

	return Result{PredictedRate: rate, Features: fs, Factors: factors}, nil
}

func intersect(found, wanted []string) []string {
	set := make(map[string]bool, len(found))
	for _, kw := range found {
		set[kw] = true
	}
	var hits []string
	for _, kw := range wanted {
		if set[kw] {
			hits = append(hits, kw)
		}
	}
	return hits
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
