// Package features extracts the textual signals a notification message is
// scored and matched on: length, emoji, urgency and benefit emphasis,
// vocabulary keywords, tone, and call to action. Extraction is pure string
// matching over fixed token tables, so identical text always yields an
// identical FeatureSet.
package features

import (
	"strings"
	"unicode/utf8"

	"notif-insights-go/internal/types"
)

// Level grades urgency and benefit emphasis.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
	LevelNone   Level = "none"
)

// Tone is the coarse voice of a message.
type Tone string

const (
	TonePromotional   Tone = "promotional"
	ToneUrgent        Tone = "urgent"
	ToneInformational Tone = "informational"
	ToneEmpathetic    Tone = "empathetic"
	ToneNeutral       Tone = "neutral"
)

// CTANone marks a message with no recognized call to action.
const CTANone = "none"

// CoreKeywords is the fixed vocabulary used for per-keyword aggregation.
var CoreKeywords = []string{
	"benefit", "max", "discount", "rate", "limit",
	"loan", "compare", "switch", "confirm", "apply",
}

// displayKeywords is the larger vocabulary reported on extracted features;
// it extends CoreKeywords with the rest of the product vocabulary.
var displayKeywords = []string{
	"rate", "limit", "loan", "compare", "preferred", "benefit", "points",
	"discount", "support", "max", "lowest", "special", "limited", "credit",
	"housing", "rent", "switch", "inquiry", "check", "confirm", "apply",
	"approval", "interest", "capital", "bank",
}

// emojiGlyphs is the fixed emoji set whose presence flags a message.
const emojiGlyphs = "🎉💰👉🏠💸🎁📣💌🚘⚡🔔🚨💎🔥📢🎯🙋"

// Urgency and benefit tiers, checked high first; the first tier with any
// hit wins.
var urgencyTiers = []struct {
	level  Level
	tokens []string
}{
	{LevelHigh, []string{"today only", "closing soon", "limited", "urgent", "hurry", "last chance", "don't miss"}},
	{LevelMedium, []string{"soon", "quick", "opportunity", "timing"}},
	{LevelLow, []string{"anytime", "take your time", "check"}},
}

var benefitTiers = []struct {
	level  Level
	tokens []string
}{
	{LevelHigh, []string{"max", "lowest", "special", "benefit", "discount", "free", "reward", "points"}},
	{LevelMedium, []string{"good", "more", "save", "deal"}},
	{LevelLow, []string{"guide", "info", "check"}},
}

// Tone cues in priority order; neutral when none match.
var toneCues = []struct {
	tone   Tone
	tokens []string
}{
	{TonePromotional, []string{"congrat", "🎉", "benefit", "special", "opportunity"}},
	{ToneUrgent, []string{"urgent", "closing", "hurry", "today only"}},
	{ToneInformational, []string{"confirm", "info", "guide", "inquiry"}},
	{ToneEmpathetic, []string{"worry", "burden", "struggle"}},
}

// ctaPhrases are scanned in order; the first present phrase is the CTA.
var ctaPhrases = []string{
	"check it out", "apply now", "compare now", "get it", "receive",
	"click", "tap", "press", "right away", "now",
}

// FeatureSet is everything extracted from one message text.
type FeatureSet struct {
	Length         int      `json:"length"`
	HasEmoji       bool     `json:"has_emoji"`
	HasNumbers     bool     `json:"has_numbers"`
	HasBrackets    bool     `json:"has_brackets"`
	HasExclamation bool     `json:"has_exclamation"`
	HasQuestion    bool     `json:"has_question"`
	HasArrow       bool     `json:"has_arrow"`
	UrgencyLevel   Level    `json:"urgency_level"`
	BenefitLevel   Level    `json:"benefit_level"`
	Keywords       []string `json:"keywords"`
	Tone           Tone     `json:"tone"`
	CallToAction   string   `json:"call_to_action"`
}

// Extract computes the feature set for a message. Matching is
// case-insensitive substring containment.
func Extract(text string) FeatureSet {
	lower := strings.ToLower(text)
	return FeatureSet{
		Length:         utf8.RuneCountInString(text),
		HasEmoji:       strings.ContainsAny(text, emojiGlyphs),
		HasNumbers:     strings.ContainsAny(text, "0123456789"),
		HasBrackets:    strings.ContainsAny(text, "(["),
		HasExclamation: strings.Contains(text, "!"),
		HasQuestion:    strings.Contains(text, "?"),
		HasArrow:       strings.Contains(text, "👉") || strings.Contains(text, ">"),
		UrgencyLevel:   UrgencyOf(lower),
		BenefitLevel:   BenefitOf(lower),
		Keywords:       keywordsIn(lower, displayKeywords),
		Tone:           ToneOf(lower),
		CallToAction:   ctaOf(lower),
	}
}

// UrgencyOf grades urgency by the first tier with a matching token.
func UrgencyOf(lower string) Level {
	for _, tier := range urgencyTiers {
		if containsAnyToken(lower, tier.tokens) {
			return tier.level
		}
	}
	return LevelNone
}

// BenefitOf grades benefit emphasis by the first tier with a matching token.
func BenefitOf(lower string) Level {
	for _, tier := range benefitTiers {
		if containsAnyToken(lower, tier.tokens) {
			return tier.level
		}
	}
	return LevelNone
}

// ToneOf classifies tone by the first cue set with a match.
func ToneOf(lower string) Tone {
	for _, cue := range toneCues {
		if containsAnyToken(lower, cue.tokens) {
			return cue.tone
		}
	}
	return ToneNeutral
}

func ctaOf(lower string) string {
	for _, p := range ctaPhrases {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return CTANone
}

// KeywordsOf returns the core vocabulary keywords present in a message.
func KeywordsOf(text string) []string {
	return keywordsIn(strings.ToLower(text), CoreKeywords)
}

// ContainsKeyword reports whether a record's message carries the keyword.
func ContainsKeyword(rec types.NotificationRecord, keyword string) bool {
	return strings.Contains(strings.ToLower(rec.MessageText), strings.ToLower(keyword))
}

func keywordsIn(lower string, vocab []string) []string {
	var found []string
	for _, kw := range vocab {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func containsAnyToken(lower string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
