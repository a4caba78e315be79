package types

import "time"

// MonthPeriod buckets a send date by its position in the month.
type MonthPeriod string

const (
	MonthEarly MonthPeriod = "early" // days 1-10
	MonthMid   MonthPeriod = "mid"   // days 11-20
	MonthLate  MonthPeriod = "late"  // days 21-31
)

// MonthPeriodOrder lists the buckets in calendar order; per-period
// aggregates always carry all three keys.
var MonthPeriodOrder = []MonthPeriod{MonthEarly, MonthMid, MonthLate}

// MonthPeriodOf returns the bucket for a date.
func MonthPeriodOf(t time.Time) MonthPeriod {
	switch d := t.Day(); {
	case d <= 10:
		return MonthEarly
	case d <= 20:
		return MonthMid
	default:
		return MonthLate
	}
}

// ServiceStats aggregates one service's records. TopMessages holds at most
// the five best records by click rate, descending.
type ServiceStats struct {
	Count        int                  `json:"count"`
	AvgClickRate float64              `json:"avg_click_rate"`
	TopMessages  []NotificationRecord `json:"messages"`
}

// KeywordStats aggregates records whose message contains a vocabulary
// keyword as a substring.
type KeywordStats struct {
	AvgClickRate float64 `json:"avg_click_rate"`
	Count        int     `json:"count"`
}

// WeekdayStats aggregates records sent on one weekday.
type WeekdayStats struct {
	AvgClickRate float64 `json:"avg_click_rate"`
	Count        int     `json:"count"`
}

// PeriodStats aggregates records sent in one month-position bucket.
type PeriodStats struct {
	AvgClickRate float64 `json:"avg_click_rate"`
	Count        int     `json:"count"`
}

// HighPerformanceCriteria records how the high-performance subset was
// derived, for display alongside it.
type HighPerformanceCriteria struct {
	Threshold       float64 `json:"threshold_rate"`
	AvgRate         float64 `json:"avg_rate"`
	Description     string  `json:"description"`
	Count           int     `json:"count"`
	TopPercent      int     `json:"top_percent"`
	CandidateWindow int     `json:"total_candidates"`
}

// MessageAggregate rolls up every high-performance occurrence of one exact
// message text.
type MessageAggregate struct {
	Message        string    `json:"message"`
	Occurrences    int       `json:"send_count"`
	TotalSends     int       `json:"total_sends"`
	TotalClicks    int       `json:"total_clicks"`
	AvgClickRate   float64   `json:"avg_click_rate"`
	MaxClickRate   float64   `json:"max_click_rate"`
	MinClickRate   float64   `json:"min_click_rate"`
	TotalClickRate float64   `json:"total_click_rate"`
	Services       []string  `json:"services"`
	FirstDate      time.Time `json:"first_date"`
	LastDate       time.Time `json:"last_date"`
}

// AggregateStatistics is the full analysis result over one canonical record
// set. It is recomputed wholesale on every ingestion and published as an
// immutable snapshot; readers must not mutate it.
type AggregateStatistics struct {
	TotalMessages            int                         `json:"total_messages"`
	PerService               map[string]ServiceStats     `json:"service_analysis"`
	PerKeyword               map[string]KeywordStats     `json:"keyword_analysis"`
	PerWeekday               map[Weekday]WeekdayStats    `json:"time_analysis"`
	PerMonthPeriod           map[MonthPeriod]PeriodStats `json:"month_period_analysis"`
	OverallAvgClickRate      float64                     `json:"overall_avg"`
	BestClickRate            float64                     `json:"best_click_rate"`
	HighPerformanceThreshold float64                     `json:"high_performance_threshold"`
	Criteria                 HighPerformanceCriteria     `json:"high_performance_criteria"`
	HighPerformance          []NotificationRecord        `json:"high_performance_messages"`
	AggregatedDuplicates     []MessageAggregate          `json:"aggregated_high_performance"`
}

// DashboardSnapshot is the read-only projection of AggregateStatistics
// served to display layers. HighPerformanceMessages is truncated to the
// top ten.
type DashboardSnapshot struct {
	Summary                 IngestSummary               `json:"summary"`
	PerService              map[string]ServiceStats     `json:"service_analysis"`
	PerKeyword              map[string]KeywordStats     `json:"keyword_analysis"`
	PerWeekday              map[Weekday]WeekdayStats    `json:"time_analysis"`
	PerMonthPeriod          map[MonthPeriod]PeriodStats `json:"month_period_analysis"`
	HighPerformanceMessages []NotificationRecord        `json:"high_performance_messages"`
	AggregatedDuplicates    []MessageAggregate          `json:"aggregated_high_performance"`
}
