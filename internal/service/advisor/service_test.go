package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/mocks"
	"github.com/seu-repo/tradeinsight/internal/ports"
)

func importRows() []domain.RawRecord {
	return []domain.RawRecord{
		{"port": "Mumbai", "value": 100.0, "product": "Copper"},
		{"port": "Chennai", "value": 250.0, "product": "Steel"},
		{"port": "Mumbai", "value": 50.0, "product": "Steel"},
	}
}

func TestGenerateReport_RendersHTML(t *testing.T) {
	// Arrange
	llm := &mocks.MockTextGenerator{Response: "## Executive Summary\n\n**Mumbai** leads imports."}
	svc := NewService(llm, zap.NewNop())

	// Act
	report, err := svc.GenerateReport(context.Background(), importRows(), "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "General Overview", report.Focus)
	assert.Contains(t, report.HTML, "<h2>Executive Summary</h2>")
	assert.Contains(t, report.HTML, "<strong>Mumbai</strong>")

	require.Len(t, llm.Prompts, 1)
	assert.Contains(t, llm.Prompts[0], "Dataset Columns: port, product, value")
	assert.Contains(t, llm.Prompts[0], "Total Records in Dataset: 3")
	assert.False(t, llm.Options[0].JSON)
}

func TestGenerateReport_NoData(t *testing.T) {
	svc := NewService(&mocks.MockTextGenerator{}, zap.NewNop())

	_, err := svc.GenerateReport(context.Background(), nil, "ports")

	assert.ErrorIs(t, err, ErrNoData)
}

func TestNotConfigured(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	_, err := svc.ClassifyHS(context.Background(), "copper wire")

	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestClassifyHS_StripsFencesAndRepairs(t *testing.T) {
	// Arrange
	llm := &mocks.MockTextGenerator{
		Response: "```json\n{\"hs_code\": \"7408\", \"title\": 'Copper wire', \"duty_rate\": \"5%\", \"gst_rate\": \"18%\",}\n```",
	}
	svc := NewService(llm, zap.NewNop())

	// Act
	hs, err := svc.ClassifyHS(context.Background(), "copper wire")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "7408", hs.HSCode)
	assert.Equal(t, "Copper wire", hs.Title)
	assert.Contains(t, llm.Prompts[0], `Product Description: "copper wire"`)
	assert.True(t, llm.Options[0].JSON)
}

func TestSustainabilityTips_SendsTopEmitters(t *testing.T) {
	// Arrange
	llm := &mocks.MockTextGenerator{
		Response: `[{"title": "Shift to sea", "impact": "Save ~2 tons", "description": "Move air freight to sea."}]`,
	}
	svc := NewService(llm, zap.NewNop())
	metrics := domain.SustainabilityMetrics{
		TotalEmissions: 12.5,
		GreenScore:     70,
		CountryEmissions: map[string]float64{
			"China": 5, "USA": 4, "Germany": 2, "Japan": 1,
		},
		ProductEmissions: map[string]float64{"Food": 3},
	}

	// Act
	tips, err := svc.SustainabilityTips(context.Background(), metrics)

	// Assert
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "Shift to sea", tips[0].Title)

	prompt := llm.Prompts[0]
	assert.Contains(t, prompt, `[["China",5],["USA",4],["Germany",2]]`)
	assert.NotContains(t, prompt, "Japan")
	assert.Contains(t, prompt, "Green Score: 70/100")
}

func TestOpportunities(t *testing.T) {
	llm := &mocks.MockTextGenerator{
		Response: `[{"product": "Tea", "opportunities": [{"country": "UAE", "flag": "AE", "premium": "+12%"}]}]`,
	}
	svc := NewService(llm, zap.NewNop())

	out, err := svc.Opportunities(context.Background(), []string{" Tea ", ""})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "AE", out[0].Opportunities[0].Flag)
	assert.True(t, strings.Contains(llm.Prompts[0], "\nTea\n"))

	_, err = svc.Opportunities(context.Background(), []string{"  "})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestChart_ExecutesPlan(t *testing.T) {
	// Arrange
	llm := &mocks.MockTextGenerator{
		Response: `{"chartType": "bar", "xColumn": "port", "yColumn": "value", "aggregation": "sum", "title": "Value by port"}`,
	}
	svc := NewService(llm, zap.NewNop())

	// Act
	plan, config, err := svc.Chart(context.Background(), "total value per port", importRows())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "bar", plan.ChartType)
	require.Len(t, config.Data, 1)
	assert.Equal(t, []string{"Chennai", "Mumbai"}, config.Data[0].X)
	assert.Equal(t, []float64{250, 150}, config.Data[0].Y)
	assert.Contains(t, llm.Prompts[0], "port (string)")
	assert.Contains(t, llm.Prompts[0], "value (number)")
}

func TestChart_RejectedByModel(t *testing.T) {
	llm := &mocks.MockTextGenerator{Response: `{"error": "no weather data"}`}
	svc := NewService(llm, zap.NewNop())

	plan, config, err := svc.Chart(context.Background(), "weather in Mumbai", importRows())

	assert.ErrorIs(t, err, ErrChartRejected)
	assert.Contains(t, err.Error(), "no weather data")
	assert.Equal(t, "no weather data", plan.Error)
	assert.Nil(t, config)
}

func TestChart_InvalidPlan(t *testing.T) {
	llm := &mocks.MockTextGenerator{Response: `{"chartType": "radar", "xColumn": "port", "aggregation": "sum"}`}
	svc := NewService(llm, zap.NewNop())

	_, _, err := svc.Chart(context.Background(), "radar of ports", importRows())

	assert.ErrorIs(t, err, ErrChartRejected)
}

func TestGenerate_PropagatesErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	llm := &mocks.MockTextGenerator{
		GenerateFunc: func(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
			return "", boom
		},
	}
	svc := NewService(llm, zap.NewNop())

	_, err := svc.GenerateReport(context.Background(), importRows(), "ports")

	assert.ErrorIs(t, err, boom)
}

func TestDecodeJSON_HjsonFallback(t *testing.T) {
	var out domain.SustainabilityTip

	err := decodeJSON("{\n  title: Ship by sea\n  impact: high\n}", &out)

	require.NoError(t, err)
	assert.NotEmpty(t, out.Title)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripFences("```json\n{\"a\": 1}\n```"))
}
