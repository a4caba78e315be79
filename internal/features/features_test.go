package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"notif-insights-go/internal/types"
)

func TestExtract_Flags(t *testing.T) {
	fs := Extract("(ad) benefit up to 50%! 🎉 details > here?")

	assert.True(t, fs.HasEmoji)
	assert.True(t, fs.HasNumbers)
	assert.True(t, fs.HasBrackets)
	assert.True(t, fs.HasExclamation)
	assert.True(t, fs.HasQuestion)
	assert.True(t, fs.HasArrow)
}

func TestExtract_LengthCountsRunes(t *testing.T) {
	assert.Equal(t, 5, Extract("hello").Length)
	assert.Equal(t, 3, Extract("금리🎉").Length)
	assert.Equal(t, 0, Extract("").Length)
}

func TestUrgencyOf_TierPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{"high token", "today only, don't wait", LevelHigh},
		{"medium token", "a quick opportunity", LevelMedium},
		{"low token", "check at your convenience", LevelLow},
		{"high beats medium", "limited offer, act soon", LevelHigh},
		{"medium beats low", "check soon", LevelMedium},
		{"no token", "hello world", LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UrgencyOf(tt.text))
		})
	}
}

func TestBenefitOf_TierPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{"high token", "max benefit inside", LevelHigh},
		{"medium token", "save more this month", LevelMedium},
		{"low token", "rate guide", LevelLow},
		{"high beats medium", "special deal", LevelHigh},
		{"no token", "hello world", LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BenefitOf(tt.text))
		})
	}
}

func TestToneOf_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tone
	}{
		{"promotional", "special benefit for you", TonePromotional},
		{"urgent", "closing soon, hurry", ToneUrgent},
		{"informational", "please confirm your details", ToneInformational},
		{"empathetic", "we know loans can be a burden", ToneEmpathetic},
		{"promotional beats urgent", "special offer closing today only", TonePromotional},
		{"urgent beats informational", "urgent: confirm your account", ToneUrgent},
		{"neutral fallback", "regular notice", ToneNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToneOf(tt.text))
		})
	}
}

func TestExtract_CallToAction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first phrase wins", "apply now and click here", "apply now"},
		{"plain click", "click to see details", "click"},
		{"bare now", "do it now", "now"},
		{"none", "a quiet notice", CTANone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).CallToAction)
		})
	}
}

func TestKeywordsOf(t *testing.T) {
	got := KeywordsOf("(AD) Benefit up to MAX discount")
	assert.Equal(t, []string{"benefit", "max", "discount"}, got)

	assert.Nil(t, KeywordsOf("nothing relevant here"))
}

func TestExtract_DisplayKeywordsSupersetCore(t *testing.T) {
	fs := Extract("special approval with preferred rate")
	assert.Contains(t, fs.Keywords, "special")
	assert.Contains(t, fs.Keywords, "approval")
	assert.Contains(t, fs.Keywords, "preferred")
	assert.Contains(t, fs.Keywords, "rate")
}

func TestContainsKeyword(t *testing.T) {
	rec := types.NotificationRecord{MessageText: "(ad) Benefit up to 50%"}
	assert.True(t, ContainsKeyword(rec, "benefit"))
	assert.True(t, ContainsKeyword(rec, "BENEFIT"))
	assert.False(t, ContainsKeyword(rec, "discount"))
}

func TestExtract_Deterministic(t *testing.T) {
	text := "(ad) limited special benefit, apply now 🎉"
	assert.Equal(t, Extract(text), Extract(text))
}
