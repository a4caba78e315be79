package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notif-insights-go/internal/types"
)

func TestScore_Formula(t *testing.T) {
	s := New(DefaultWeights())

	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			// base 8.5 + 3 bonus keywords (+6) + length 37 in band (+1)
			name: "all three bonus keywords",
			text: "(ad) benefit discount max confirm now",
			want: 15.5,
		},
		{
			name: "base only",
			text: "hello",
			want: 8.5,
		},
		{
			name: "emoji penalty",
			text: "good afternoon 🎉",
			want: 6.5,
		},
		{
			name: "over-length penalty",
			text: strings.Repeat("a", 61),
			want: 7.5,
		},
		{
			name: "length band bonus",
			text: strings.Repeat("a", 30),
			want: 9.5,
		},
		{
			name: "high urgency bonus",
			text: "limited time",
			want: 9.5,
		},
		{
			name: "one keyword plus emoji cancel out",
			text: "your benefit 🎉",
			want: 8.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Score(tt.text, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.PredictedRate, 1e-9)
		})
	}
}

func TestScore_Clamp(t *testing.T) {
	w := DefaultWeights()
	w.Base = 30
	hi, err := New(w).Score("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, w.MaxRate, hi.PredictedRate)

	w = DefaultWeights()
	w.Base = 0
	lo, err := New(w).Score("good afternoon 🎉", nil)
	require.NoError(t, err)
	assert.Equal(t, w.MinRate, lo.PredictedRate)
}

func TestScore_EmptyTextInvalid(t *testing.T) {
	s := New(DefaultWeights())

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := s.Score(text, nil)
		assert.ErrorIs(t, err, types.ErrInvalidRequest)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := New(DefaultWeights())
	text := "(ad) special benefit, apply now and save"

	a, err := s.Score(text, nil)
	require.NoError(t, err)
	b, err := s.Score(text, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScore_Factors(t *testing.T) {
	s := New(DefaultWeights())

	got, err := s.Score("(ad) benefit discount max confirm now", nil)
	require.NoError(t, err)
	assert.Contains(t, got.Factors["keywords"], "benefit, max, discount")
	assert.Contains(t, got.Factors["length"], "37")
	assert.Equal(t, "0% (text only)", got.Factors["emoji"])
	assert.Equal(t, "0% (regular)", got.Factors["urgency"])

	got, err = s.Score("plain notice", nil)
	require.NoError(t, err)
	assert.Equal(t, "+0% (no bonus keywords)", got.Factors["keywords"])
}

func TestScore_CorpusAnnotation(t *testing.T) {
	s := New(DefaultWeights())
	stats := &types.AggregateStatistics{
		PerKeyword: map[string]types.KeywordStats{
			"benefit": {Count: 4, AvgClickRate: 11.2},
		},
	}

	got, err := s.Score("your benefit is waiting here for you now", stats)
	require.NoError(t, err)
	assert.Contains(t, got.Factors, "corpus_benefit")
	assert.Contains(t, got.Factors["corpus_benefit"], "11.2")

	// no annotation for keywords absent from the corpus
	assert.NotContains(t, got.Factors, "corpus_discount")
}
