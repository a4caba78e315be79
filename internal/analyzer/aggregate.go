package analyzer

import (
	"fmt"
	"math"
	"sort"

	"notif-insights-go/internal/features"
	"notif-insights-go/internal/types"
)

const (
	// Per-service representative messages kept per group.
	topMessagesPerService = 5

	// High-performance candidate window: top 20% by rank, at least this
	// many when the dataset is small.
	highPerfMinWindow  = 10
	highPerfTopPercent = 20

	// Absolute floor and relative multiplier of the dynamic threshold.
	highPerfFloor      = 8.0
	highPerfMultiplier = 1.2
)

// computeStatistics runs the full aggregation pass over a canonical record
// set. It builds a fresh AggregateStatistics and never mutates its input;
// the caller publishes the result atomically.
func computeStatistics(records []types.NotificationRecord) *types.AggregateStatistics {
	stats := &types.AggregateStatistics{
		TotalMessages:  len(records),
		PerService:     serviceStats(records),
		PerKeyword:     keywordStats(records),
		PerWeekday:     weekdayStats(records),
		PerMonthPeriod: monthPeriodStats(records),
	}

	for _, r := range records {
		stats.OverallAvgClickRate += r.ClickRate
		if r.ClickRate > stats.BestClickRate {
			stats.BestClickRate = r.ClickRate
		}
	}
	if len(records) > 0 {
		stats.OverallAvgClickRate /= float64(len(records))
	}

	stats.HighPerformanceThreshold = math.Max(stats.OverallAvgClickRate*highPerfMultiplier, highPerfFloor)
	stats.HighPerformance, stats.Criteria = highPerformanceSet(records, stats.OverallAvgClickRate, stats.HighPerformanceThreshold)
	stats.AggregatedDuplicates = aggregateDuplicates(stats.HighPerformance)

	return stats
}

func serviceStats(records []types.NotificationRecord) map[string]types.ServiceStats {
	grouped := map[string][]types.NotificationRecord{}
	for _, r := range records {
		grouped[r.Service] = append(grouped[r.Service], r)
	}

	out := make(map[string]types.ServiceStats, len(grouped))
	for svc, group := range grouped {
		sum := 0.0
		for _, r := range group {
			sum += r.ClickRate
		}
		top := append([]types.NotificationRecord(nil), group...)
		sort.SliceStable(top, func(i, j int) bool { return top[i].ClickRate > top[j].ClickRate })
		if len(top) > topMessagesPerService {
			top = top[:topMessagesPerService]
		}
		out[svc] = types.ServiceStats{
			Count:        len(group),
			AvgClickRate: sum / float64(len(group)),
			TopMessages:  top,
		}
	}
	return out
}

// keywordStats aggregates over the fixed core vocabulary. Keywords with no
// matching message are omitted from the map entirely.
func keywordStats(records []types.NotificationRecord) map[string]types.KeywordStats {
	out := map[string]types.KeywordStats{}
	for _, kw := range features.CoreKeywords {
		sum, count := 0.0, 0
		for _, r := range records {
			if features.ContainsKeyword(r, kw) {
				sum += r.ClickRate
				count++
			}
		}
		if count > 0 {
			out[kw] = types.KeywordStats{AvgClickRate: sum / float64(count), Count: count}
		}
	}
	return out
}

// weekdayStats always carries all seven keys; weekdays with no records get
// an explicit zero entry.
func weekdayStats(records []types.NotificationRecord) map[types.Weekday]types.WeekdayStats {
	out := make(map[types.Weekday]types.WeekdayStats, len(types.WeekdayOrder))
	for _, day := range types.WeekdayOrder {
		sum, count := 0.0, 0
		for _, r := range records {
			if r.Weekday == day {
				sum += r.ClickRate
				count++
			}
		}
		s := types.WeekdayStats{Count: count}
		if count > 0 {
			s.AvgClickRate = sum / float64(count)
		}
		out[day] = s
	}
	return out
}

func monthPeriodStats(records []types.NotificationRecord) map[types.MonthPeriod]types.PeriodStats {
	out := make(map[types.MonthPeriod]types.PeriodStats, len(types.MonthPeriodOrder))
	for _, period := range types.MonthPeriodOrder {
		sum, count := 0.0, 0
		for _, r := range records {
			if types.MonthPeriodOf(r.SentDate) == period {
				sum += r.ClickRate
				count++
			}
		}
		s := types.PeriodStats{Count: count}
		if count > 0 {
			s.AvgClickRate = sum / float64(count)
		}
		out[period] = s
	}
	return out
}

// highPerformanceSet applies both qualifying conditions jointly: a record
// must clear the dynamic threshold AND sit inside the top-20%-by-rank
// candidate window (minimum window of 10 for small sets).
func highPerformanceSet(records []types.NotificationRecord, avg, threshold float64) ([]types.NotificationRecord, types.HighPerformanceCriteria) {
	ranked := append([]types.NotificationRecord(nil), records...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ClickRate > ranked[j].ClickRate })

	window := len(ranked) / 5
	if window < highPerfMinWindow {
		window = highPerfMinWindow
	}
	if window > len(ranked) {
		window = len(ranked)
	}

	var high []types.NotificationRecord
	for _, r := range ranked[:window] {
		if r.ClickRate >= threshold {
			high = append(high, r)
		}
	}

	criteria := types.HighPerformanceCriteria{
		Threshold:       threshold,
		AvgRate:         avg,
		Description:     fmt.Sprintf("at least %.0f%% of the overall average (%.1f%%) or the %.1f%% floor, within the top %d by rank", highPerfMultiplier*100, avg, highPerfFloor, window),
		Count:           len(high),
		TopPercent:      highPerfTopPercent,
		CandidateWindow: window,
	}
	return high, criteria
}

// aggregateDuplicates groups the high-performance set by exact message
// text. Per-occurrence clicks are reconstructed as round(rate/100 * sends)
// and the roll-up's total click rate is recomputed over the summed counts.
func aggregateDuplicates(high []types.NotificationRecord) []types.MessageAggregate {
	groups := map[string]*types.MessageAggregate{}
	services := map[string]map[string]bool{}
	var order []string

	for _, r := range high {
		g, ok := groups[r.MessageText]
		if !ok {
			g = &types.MessageAggregate{
				Message:      r.MessageText,
				MinClickRate: r.ClickRate,
				FirstDate:    r.SentDate,
				LastDate:     r.SentDate,
			}
			groups[r.MessageText] = g
			services[r.MessageText] = map[string]bool{}
			order = append(order, r.MessageText)
		}

		g.Occurrences++
		g.TotalSends += r.SentCount
		g.TotalClicks += int(math.Round(r.ClickRate / 100 * float64(r.SentCount)))
		g.AvgClickRate += r.ClickRate
		if r.ClickRate > g.MaxClickRate {
			g.MaxClickRate = r.ClickRate
		}
		if r.ClickRate < g.MinClickRate {
			g.MinClickRate = r.ClickRate
		}
		if r.SentDate.Before(g.FirstDate) {
			g.FirstDate = r.SentDate
		}
		if r.SentDate.After(g.LastDate) {
			g.LastDate = r.SentDate
		}
		services[r.MessageText][r.Service] = true
	}

	out := make([]types.MessageAggregate, 0, len(order))
	for _, msg := range order {
		g := groups[msg]
		g.AvgClickRate /= float64(g.Occurrences)
		if g.TotalSends > 0 {
			g.TotalClickRate = float64(g.TotalClicks) / float64(g.TotalSends) * 100
		}
		for svc := range services[msg] {
			g.Services = append(g.Services, svc)
		}
		sort.Strings(g.Services)
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalClickRate > out[j].TotalClickRate })
	return out
}
