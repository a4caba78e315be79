// Package analyzer owns the canonical record set and its aggregate
// statistics. Ingestion is a full-replace operation: every call rebuilds
// the record set and recomputes all aggregates off to the side, then
// publishes the new snapshot atomically. Reads always see either the old
// complete snapshot or the new one, never a mix.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"notif-insights-go/internal/dataset"
	"notif-insights-go/internal/generator"
	"notif-insights-go/internal/logger"
	"notif-insights-go/internal/matcher"
	"notif-insights-go/internal/scoring"
	"notif-insights-go/internal/types"
)

// Engine is an explicitly owned analysis engine instance. Construct one
// with New and hold the handle; there is no ambient global state.
type Engine struct {
	log    *logger.Logger
	scorer *scoring.Scorer
	now    func() time.Time

	mu      sync.RWMutex
	records []types.NotificationRecord
	stats   *types.AggregateStatistics
	gen     generator.CandidateGenerator
}

func New(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.New()
	}
	scorer := scoring.New(scoring.DefaultWeights())
	return &Engine{
		log:    log.WithComponent("analyzer"),
		scorer: scorer,
		now:    time.Now,
		gen:    generator.NewHeuristic(scorer),
	}
}

// SetGenerator replaces the candidate generator, e.g. with an
// external-service-backed one. The heuristic generator installed by New
// remains the mandatory fallback when g is nil.
func (e *Engine) SetGenerator(g generator.CandidateGenerator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g == nil {
		g = generator.NewHeuristic(e.scorer)
	}
	e.gen = g
}

// Ingest replaces the canonical record set with the given rows and
// recomputes all aggregates. Row-level problems are recovered and counted;
// the one hard failure is an empty accepted set, which leaves the previous
// state untouched.
func (e *Engine) Ingest(rows []types.RawRow) (types.IngestResult, error) {
	now := e.now()
	var res types.IngestResult

	records := make([]types.NotificationRecord, 0, len(rows))
	for _, raw := range rows {
		if rowEmpty(raw) {
			res.Rejected++
			continue
		}
		rec := convertRow(dataset.Normalize(raw), now)
		if rec.DateDefaulted {
			res.DateDefaulted++
		}
		records = append(records, rec)
		res.Accepted++
	}

	if len(records) == 0 {
		e.log.WithField("rejected", res.Rejected).Warn("ingestion produced no valid rows")
		return res, fmt.Errorf("ingest: %w", types.ErrEmptyDataset)
	}

	stats := computeStatistics(records)

	e.mu.Lock()
	e.records = records
	e.stats = stats
	e.mu.Unlock()

	res.Summary = summarize(records, stats)
	e.log.WithFields(map[string]interface{}{
		"accepted":       res.Accepted,
		"rejected":       res.Rejected,
		"date_defaulted": res.DateDefaulted,
		"services":       len(stats.PerService),
		"high_perf":      len(stats.HighPerformance),
	}).Info("ingestion complete")
	return res, nil
}

// IngestText accepts raw delimited text (tab or comma separated, with a
// header line) and runs the standard ingestion path on it.
func (e *Engine) IngestText(text string) (types.IngestResult, error) {
	rows, err := dataset.ParseDelimited(text)
	if err != nil {
		return types.IngestResult{}, fmt.Errorf("ingest text: %w", err)
	}
	return e.Ingest(rows)
}

// IngestWorkbook loads the first sheet of an XLSX file and runs the
// standard ingestion path on it.
func (e *Engine) IngestWorkbook(path string) (types.IngestResult, error) {
	rows, err := dataset.LoadWorkbook(path)
	if err != nil {
		return types.IngestResult{}, fmt.Errorf("ingest workbook: %w", err)
	}
	return e.Ingest(rows)
}

// Statistics returns the last published aggregate snapshot. Callers must
// treat it as immutable.
func (e *Engine) Statistics() (*types.AggregateStatistics, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stats == nil {
		return nil, types.ErrNotAnalyzed
	}
	return e.stats, nil
}

// Dashboard projects the current snapshot for display layers.
func (e *Engine) Dashboard() (*types.DashboardSnapshot, error) {
	e.mu.RLock()
	records, stats := e.records, e.stats
	e.mu.RUnlock()
	if stats == nil {
		return nil, types.ErrNotAnalyzed
	}

	high := stats.HighPerformance
	if len(high) > 10 {
		high = high[:10]
	}
	return &types.DashboardSnapshot{
		Summary:                 summarize(records, stats),
		PerService:              stats.PerService,
		PerKeyword:              stats.PerKeyword,
		PerWeekday:              stats.PerWeekday,
		PerMonthPeriod:          stats.PerMonthPeriod,
		HighPerformanceMessages: high,
		AggregatedDuplicates:    stats.AggregatedDuplicates,
	}, nil
}

// Score computes the predicted click rate for arbitrary message text. The
// current aggregates, when present, only enrich the factor annotations;
// scoring works before any ingestion as well.
func (e *Engine) Score(text string) (scoring.Result, error) {
	e.mu.RLock()
	stats := e.stats
	e.mu.RUnlock()
	return e.scorer.Score(text, stats)
}

// Match ranks the historical records against a request.
func (e *Engine) Match(req types.MessageRequest) ([]matcher.Result, error) {
	e.mu.RLock()
	records := e.records
	e.mu.RUnlock()
	if records == nil {
		return nil, types.ErrNotAnalyzed
	}
	return matcher.Match(records, req)
}

// GenerateCandidates produces labeled candidate messages for a request via
// the configured generator.
func (e *Engine) GenerateCandidates(ctx context.Context, req types.MessageRequest) ([]generator.Candidate, error) {
	e.mu.RLock()
	gen, stats := e.gen, e.stats
	e.mu.RUnlock()
	return gen.Generate(ctx, req, stats)
}

func summarize(records []types.NotificationRecord, stats *types.AggregateStatistics) types.IngestSummary {
	s := types.IngestSummary{
		TotalMessages:        len(records),
		AvgClickRate:         stats.OverallAvgClickRate,
		MaxClickRate:         stats.BestClickRate,
		HighPerformanceCount: len(stats.HighPerformance),
		ServiceCount:         len(stats.PerService),
	}
	if len(records) > 0 {
		s.MinClickRate = records[0].ClickRate
		for _, r := range records[1:] {
			if r.ClickRate < s.MinClickRate {
				s.MinClickRate = r.ClickRate
			}
		}
	}
	return s
}

// rowEmpty reports whether a raw row carries no usable cell at all. Such
// rows are the one malformed shape that gets rejected rather than
// defaulted.
func rowEmpty(row types.RawRow) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
