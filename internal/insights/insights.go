// Package insights renders natural-language cards over an aggregate
// snapshot: what performed, what lagged, and what to try next.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"notif-insights-go/internal/types"
)

// Card is one rendered insight.
type Card struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Build derives insight cards from a snapshot. Cards whose underlying data
// is absent (e.g. no keyword ever matched) are simply omitted.
func Build(stats *types.AggregateStatistics) []Card {
	if stats == nil || stats.TotalMessages == 0 {
		return nil
	}

	cards := []Card{overview(stats)}
	if c, ok := servicePerformance(stats); ok {
		cards = append(cards, c)
	}
	if c, ok := effectiveKeywords(stats); ok {
		cards = append(cards, c)
	}
	if c, ok := weekdayPerformance(stats); ok {
		cards = append(cards, c)
	}
	if c, ok := highPerformancePatterns(stats); ok {
		cards = append(cards, c)
	}
	if c, ok := improvements(stats); ok {
		cards = append(cards, c)
	}
	return cards
}

func overview(stats *types.AggregateStatistics) Card {
	share := float64(len(stats.HighPerformance)) / float64(stats.TotalMessages) * 100
	return Card{
		Category: "overall performance",
		Content: fmt.Sprintf(
			"Across %d notification messages the average click rate is %.1f%% with a best of %.1f%%. %d messages (%.1f%%) qualify as high performers.",
			stats.TotalMessages, stats.OverallAvgClickRate, stats.BestClickRate,
			len(stats.HighPerformance), share),
	}
}

func servicePerformance(stats *types.AggregateStatistics) (Card, bool) {
	if len(stats.PerService) == 0 {
		return Card{}, false
	}
	best, worst := "", ""
	for svc, s := range stats.PerService {
		if best == "" || s.AvgClickRate > stats.PerService[best].AvgClickRate {
			best = svc
		}
		if worst == "" || s.AvgClickRate < stats.PerService[worst].AvgClickRate {
			worst = svc
		}
	}
	return Card{
		Category: "service performance",
		Content: fmt.Sprintf(
			"%q leads with an average of %.1f%%; %q trails at %.1f%% and needs work. %d services analyzed.",
			best, stats.PerService[best].AvgClickRate,
			worst, stats.PerService[worst].AvgClickRate,
			len(stats.PerService)),
	}, true
}

func effectiveKeywords(stats *types.AggregateStatistics) (Card, bool) {
	type kwRate struct {
		kw   string
		rate float64
	}
	var above []kwRate
	for kw, s := range stats.PerKeyword {
		if s.AvgClickRate > stats.OverallAvgClickRate {
			above = append(above, kwRate{kw, s.AvgClickRate})
		}
	}
	if len(above) == 0 {
		return Card{}, false
	}
	sort.Slice(above, func(i, j int) bool {
		if above[i].rate != above[j].rate {
			return above[i].rate > above[j].rate
		}
		return above[i].kw < above[j].kw
	})
	if len(above) > 3 {
		above = above[:3]
	}
	parts := make([]string, len(above))
	for i, k := range above {
		parts[i] = fmt.Sprintf("%q (%.1f%%)", k.kw, k.rate)
	}
	return Card{
		Category: "effective keywords",
		Content:  fmt.Sprintf("Keywords %s beat the corpus average; lean on them for new copy.", strings.Join(parts, ", ")),
	}, true
}

func weekdayPerformance(stats *types.AggregateStatistics) (Card, bool) {
	best, worst := types.Weekday(""), types.Weekday("")
	for _, day := range types.WeekdayOrder {
		s := stats.PerWeekday[day]
		if s.Count == 0 {
			continue
		}
		if best == "" || s.AvgClickRate > stats.PerWeekday[best].AvgClickRate {
			best = day
		}
		if worst == "" || s.AvgClickRate < stats.PerWeekday[worst].AvgClickRate {
			worst = day
		}
	}
	if best == "" {
		return Card{}, false
	}
	return Card{
		Category: "weekday performance",
		Content: fmt.Sprintf(
			"%s sends average %.1f%%, the strongest day; %s is the weakest at %.1f%%. Shifting send timing can lift results.",
			best, stats.PerWeekday[best].AvgClickRate,
			worst, stats.PerWeekday[worst].AvgClickRate),
	}, true
}

func highPerformancePatterns(stats *types.AggregateStatistics) (Card, bool) {
	if len(stats.AggregatedDuplicates) == 0 {
		return Card{}, false
	}
	top := stats.AggregatedDuplicates[0]
	repeated := 0
	for _, agg := range stats.AggregatedDuplicates {
		if agg.Occurrences > 1 {
			repeated++
		}
	}
	msg := top.Message
	if len([]rune(msg)) > 30 {
		msg = string([]rune(msg)[:30]) + "..."
	}
	return Card{
		Category: "high-performance patterns",
		Content: fmt.Sprintf(
			"The top message %q reached a %.1f%% total click rate. %d messages were sent more than once, which marks them as proven copy.",
			msg, top.TotalClickRate, repeated),
	}, true
}

func improvements(stats *types.AggregateStatistics) (Card, bool) {
	var lagging []string
	for svc, s := range stats.PerService {
		if s.AvgClickRate < stats.OverallAvgClickRate {
			lagging = append(lagging, svc)
		}
	}
	if len(lagging) == 0 {
		return Card{}, false
	}
	sort.Strings(lagging)
	return Card{
		Category: "improvement suggestions",
		Content: fmt.Sprintf(
			"Rework copy for %s, which sit below the %.1f%% corpus average; applying the effective keywords could lift the overall average toward %.1f%%.",
			strings.Join(lagging, ", "), stats.OverallAvgClickRate, stats.OverallAvgClickRate*1.2),
	}, true
}
