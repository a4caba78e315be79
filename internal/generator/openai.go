package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"notif-insights-go/internal/logger"
	"notif-insights-go/internal/scoring"
	"notif-insights-go/internal/types"
)

const (
	defaultModel      = "gpt-4o-mini"
	defaultTimeout    = 25 * time.Second
	defaultMaxElapsed = 45 * time.Second

	// promptExampleLimit caps how many historical high performers are
	// embedded as few-shot evidence.
	promptExampleLimit = 5
)

// OpenAI generates candidates through a chat-completion call. It is an
// optional enhancement; callers keep the heuristic generator as the
// mandatory fallback (see WithFallback).
type OpenAI struct {
	client     *openai.Client
	model      string
	scorer     *scoring.Scorer
	log        *logger.Logger
	timeout    time.Duration
	maxElapsed time.Duration
}

func NewOpenAI(apiKey, model string, log *logger.Logger) *OpenAI {
	if model == "" {
		model = defaultModel
	}
	if log == nil {
		log = logger.New()
	}
	return &OpenAI{
		client:     openai.NewClient(apiKey),
		model:      model,
		scorer:     scoring.New(scoring.DefaultWeights()),
		log:        log.WithComponent("generator.openai"),
		timeout:    defaultTimeout,
		maxElapsed: defaultMaxElapsed,
	}
}

// Generate asks the model for candidates, retrying transient failures with
// exponential backoff. Client-side (4xx) API errors are permanent. The
// predicted rate on each candidate always comes from the local heuristic
// scorer so that external and offline candidates stay comparable.
func (g *OpenAI) Generate(ctx context.Context, req types.MessageRequest, stats *types.AggregateStatistics) ([]Candidate, error) {
	prompt := buildPrompt(req, stats)

	var out []Candidate
	op := func() error {
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.CreateChatCompletion(cctx, openai.ChatCompletionRequest{
			Model:       g.model,
			Temperature: 0,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 {
				return backoff.Permanent(err)
			}
			g.log.WithError(err).Warn("chat completion failed, will retry")
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty choices in completion response")
		}

		raw := extractJSON(resp.Choices[0].Message.Content)
		if raw == "" {
			return fmt.Errorf("no JSON object in model output")
		}
		var parsed struct {
			Candidates []struct {
				Style     string `json:"style"`
				Message   string `json:"message"`
				Reasoning string `json:"reasoning"`
			} `json:"candidates"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return fmt.Errorf("decode candidates: %w", err)
		}
		if len(parsed.Candidates) == 0 {
			return fmt.Errorf("model returned no candidates")
		}

		out = out[:0]
		for _, c := range parsed.Candidates {
			if strings.TrimSpace(c.Message) == "" {
				continue
			}
			out = append(out, Candidate{Style: c.Style, Message: c.Message, Reasoning: c.Reasoning})
		}
		if len(out) == 0 {
			return fmt.Errorf("model returned only empty messages")
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = g.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("llm generation failed: %w", err)
	}

	for i := range out {
		if res, err := g.scorer.Score(out[i].Message, stats); err == nil {
			out[i].PredictedRate = res.PredictedRate
		}
	}
	g.log.WithField("candidates", len(out)).Info("llm candidates generated")
	return out, nil
}

func buildPrompt(req types.MessageRequest, stats *types.AggregateStatistics) string {
	var b strings.Builder
	b.WriteString(`You are a marketing copywriter for financial push notifications.
Write 2-3 short candidate messages for the request below.

Return ONLY a JSON object of this exact shape, no commentary, no backticks:
{"candidates": [{"style": "", "message": "", "reasoning": ""}]}

Request:
`)
	reqJSON, _ := json.MarshalIndent(req, "", "  ")
	b.Write(reqJSON)

	if stats != nil && len(stats.AggregatedDuplicates) > 0 {
		b.WriteString("\n\nHistorical high performers (use as style evidence, do not copy verbatim):\n")
		examples := stats.AggregatedDuplicates
		if len(examples) > promptExampleLimit {
			examples = examples[:promptExampleLimit]
		}
		for _, ex := range examples {
			fmt.Fprintf(&b, "- %q (%.1f%% click rate over %d sends)\n", ex.Message, ex.TotalClickRate, ex.TotalSends)
		}
	}
	return b.String()
}

// extractJSON finds the first balanced JSON object in a string, stripping
// common markdown fences first.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
