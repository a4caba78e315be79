package generator

import (
	"context"

	"notif-insights-go/internal/logger"
	"notif-insights-go/internal/types"
)

// Fallback tries a primary generator and falls back to a secondary one on
// any error. The usual wiring is OpenAI primary, Heuristic secondary, so
// candidate generation keeps working when the external service is down or
// unconfigured.
type Fallback struct {
	primary   CandidateGenerator
	secondary CandidateGenerator
	log       *logger.Logger
}

func WithFallback(primary, secondary CandidateGenerator, log *logger.Logger) *Fallback {
	if log == nil {
		log = logger.New()
	}
	return &Fallback{primary: primary, secondary: secondary, log: log.WithComponent("generator.fallback")}
}

func (f *Fallback) Generate(ctx context.Context, req types.MessageRequest, stats *types.AggregateStatistics) ([]Candidate, error) {
	out, err := f.primary.Generate(ctx, req, stats)
	if err == nil {
		return out, nil
	}
	f.log.WithError(err).Warn("primary generator failed, using fallback")
	return f.secondary.Generate(ctx, req, stats)
}
