// Package advisor turns trade data into LLM-written reports, classifications
// and recommendations.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/observability/telemetry"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/analytics"
)

const (
	reportSampleRows = 50
	chartSampleRows  = 3
	topEmitters      = 3
	defaultFocus     = "General Overview"
)

var (
	ErrAINotConfigured    = errors.New("AI provider is not configured")
	ErrNoData             = errors.New("no data provided")
	ErrEmptyInput         = errors.New("input is required")
	ErrUnparsableResponse = errors.New("failed to parse AI response")
	ErrChartRejected      = errors.New("chart request rejected")
)

type Service struct {
	llm ports.TextGenerator
	log *zap.Logger
}

// NewService builds the advisor. A nil generator makes every call fail with
// ErrAINotConfigured.
func NewService(llm ports.TextGenerator, log *zap.Logger) ports.AdvisorService {
	return &Service{llm: llm, log: log}
}

func (s *Service) generate(ctx context.Context, operation, prompt string, opts ports.GenerateOptions) (string, error) {
	if s.llm == nil {
		return "", ErrAINotConfigured
	}

	ctx, span := telemetry.Tracer().Start(ctx, "advisor."+operation)
	defer span.End()

	start := time.Now()
	text, err := s.llm.Generate(ctx, prompt, opts)
	telemetry.AILatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.AIRequestsTotal.WithLabelValues(operation, "error").Inc()
		span.RecordError(err)
		s.log.Error("AI request failed", zap.String("operation", operation), zap.Error(err))
		return "", fmt.Errorf("%s: %w", operation, err)
	}
	telemetry.AIRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return text, nil
}

func (s *Service) GenerateReport(ctx context.Context, rows []domain.RawRecord, focus string) (*domain.Report, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	focus = strings.TrimSpace(focus)
	if focus == "" {
		focus = defaultFocus
	}

	sample := rows
	if len(sample) > reportSampleRows {
		sample = sample[:reportSampleRows]
	}
	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample: %w", err)
	}

	prompt := fmt.Sprintf(reportPrompt, focus, strings.Join(columns(rows), ", "), len(sample), sampleJSON, len(rows))
	text, err := s.generate(ctx, "report", prompt, ports.GenerateOptions{Temperature: 0.4})
	if err != nil {
		return nil, err
	}

	html, err := renderHTML(text)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &domain.Report{Focus: focus, Markdown: text, HTML: html}, nil
}

func (s *Service) ClassifyHS(ctx context.Context, description string) (*domain.HSClassification, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyInput
	}

	text, err := s.generate(ctx, "classify_hs", fmt.Sprintf(classifyPrompt, description),
		ports.GenerateOptions{JSON: true, Temperature: 0.1})
	if err != nil {
		return nil, err
	}

	var out domain.HSClassification
	if err := decodeJSON(text, &out); err != nil {
		s.log.Warn("unparsable classification", zap.String("response", text))
		return nil, err
	}
	return &out, nil
}

func (s *Service) SustainabilityTips(ctx context.Context, metrics domain.SustainabilityMetrics) ([]domain.SustainabilityTip, error) {
	countries, err := json.Marshal(topPairs(metrics.CountryEmissions))
	if err != nil {
		return nil, err
	}
	products, err := json.Marshal(topPairs(metrics.ProductEmissions))
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(sustainabilityPrompt, metrics.TotalEmissions, metrics.GreenScore, metrics.PotentialSavings, countries, products)
	text, err := s.generate(ctx, "sustainability_tips", prompt, ports.GenerateOptions{JSON: true, Temperature: 0.3})
	if err != nil {
		return nil, err
	}

	var tips []domain.SustainabilityTip
	if err := decodeJSON(text, &tips); err != nil {
		s.log.Warn("unparsable sustainability tips", zap.String("response", text))
		return nil, err
	}
	return tips, nil
}

func (s *Service) Opportunities(ctx context.Context, products []string) ([]domain.ProductOpportunities, error) {
	cleaned := make([]string, 0, len(products))
	for _, p := range products {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyInput
	}

	text, err := s.generate(ctx, "opportunities", fmt.Sprintf(opportunitiesPrompt, strings.Join(cleaned, ", ")),
		ports.GenerateOptions{JSON: true, Temperature: 0.4})
	if err != nil {
		return nil, err
	}

	var out []domain.ProductOpportunities
	if err := decodeJSON(text, &out); err != nil {
		s.log.Warn("unparsable opportunities", zap.String("response", text))
		return nil, err
	}
	return out, nil
}

func (s *Service) Chart(ctx context.Context, query string, rows []domain.RawRecord) (*domain.ChartPlan, *domain.ChartConfig, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, ErrEmptyInput
	}
	if len(rows) == 0 {
		return nil, nil, ErrNoData
	}

	sample := rows
	if len(sample) > chartSampleRows {
		sample = sample[:chartSampleRows]
	}
	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode sample: %w", err)
	}

	text, err := s.generate(ctx, "chart", fmt.Sprintf(chartPrompt, query, columnSummary(rows), sampleJSON),
		ports.GenerateOptions{JSON: true, Temperature: 0.1})
	if err != nil {
		return nil, nil, err
	}

	var plan domain.ChartPlan
	if err := decodeJSON(text, &plan); err != nil {
		s.log.Warn("unparsable chart plan", zap.String("response", text))
		return nil, nil, err
	}
	if plan.Error != "" {
		return &plan, nil, fmt.Errorf("%w: %s", ErrChartRejected, plan.Error)
	}
	if err := analytics.ValidatePlan(plan); err != nil {
		return &plan, nil, fmt.Errorf("%w: %v", ErrChartRejected, err)
	}

	config := analytics.ExecuteChartPlan(plan, rows)
	return &plan, &config, nil
}

// columns lists the keys of the first row in a stable order.
func columns(rows []domain.RawRecord) []string {
	cols := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// columnSummary renders "name (type)" for every column of the first row.
func columnSummary(rows []domain.RawRecord) string {
	cols := columns(rows)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s (%s)", c, jsType(rows[0][c]))
	}
	return strings.Join(parts, ", ")
}

func jsType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case string:
		return "string"
	default:
		return "object"
	}
}

// topPairs returns the largest entries as [name, value] pairs.
func topPairs(values map[string]float64) [][]any {
	top := analytics.TopN(values, topEmitters)
	out := make([][]any, len(top))
	for i, kv := range top {
		out[i] = []any{kv.Key, kv.Value}
	}
	return out
}
