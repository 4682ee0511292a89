package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

func chartRows() []domain.RawRecord {
	return []domain.RawRecord{
		{"port": "JNPT", "assessable_value": 100.0},
		{"port": "Mundra", "assessable_value": "300"},
		{"port": "JNPT", "assessable_value": 50.0},
		{"assessable_value": 10.0},
	}
}

func TestExecuteChartPlan_SumBar(t *testing.T) {
	plan := domain.ChartPlan{ChartType: "bar", XColumn: "port", YColumn: "assessable_value", Aggregation: "sum", Title: "Value by port"}

	cfg := ExecuteChartPlan(plan, chartRows())

	require.Len(t, cfg.Data, 1)
	assert.Equal(t, []string{"Mundra", "JNPT", "Unknown"}, cfg.Data[0].X)
	assert.Equal(t, []float64{300, 150, 10}, cfg.Data[0].Y)
	assert.Equal(t, "Value by port", cfg.Layout["title"])
}

func TestExecuteChartPlan_CountPie(t *testing.T) {
	plan := domain.ChartPlan{ChartType: "pie", XColumn: "port", Aggregation: "count"}

	cfg := ExecuteChartPlan(plan, chartRows())

	assert.Nil(t, cfg.Data[0].X)
	assert.Equal(t, []string{"JNPT", "Mundra", "Unknown"}, cfg.Data[0].Labels)
	assert.Equal(t, []float64{2, 1, 1}, cfg.Data[0].Values)
}

func TestExecuteChartPlan_AverageLineKeepsOrder(t *testing.T) {
	plan := domain.ChartPlan{ChartType: "line", XColumn: "port", YColumn: "assessable_value", Aggregation: "average"}

	cfg := ExecuteChartPlan(plan, chartRows())

	assert.Equal(t, []string{"JNPT", "Mundra", "Unknown"}, cfg.Data[0].X)
	assert.Equal(t, []float64{75, 300, 10}, cfg.Data[0].Y)
}

func TestExecuteChartPlan_BarTruncatesToTwenty(t *testing.T) {
	var rows []domain.RawRecord
	for i := 0; i < 30; i++ {
		rows = append(rows, domain.RawRecord{"k": fmt.Sprintf("k%d", i), "v": float64(i)})
	}
	plan := domain.ChartPlan{ChartType: "bar", XColumn: "k", YColumn: "v", Aggregation: "sum", Colors: []string{"#123456"}}

	cfg := ExecuteChartPlan(plan, rows)

	assert.Len(t, cfg.Data[0].X, 20)
	assert.Equal(t, "k29", cfg.Data[0].X[0])
	assert.Equal(t, []string{"#123456"}, cfg.Data[0].Marker["color"])
}

func TestExecuteChartPlan_ScatterNone(t *testing.T) {
	plan := domain.ChartPlan{ChartType: "scatter", XColumn: "port", YColumn: "assessable_value", Aggregation: "none"}

	cfg := ExecuteChartPlan(plan, chartRows())

	assert.Equal(t, []string{"JNPT", "Mundra", "JNPT", ""}, cfg.Data[0].X)
	assert.Equal(t, []float64{100, 300, 50, 10}, cfg.Data[0].Y)
	assert.Equal(t, "markers", cfg.Data[0].Mode)
}

func TestValidatePlan(t *testing.T) {
	assert.NoError(t, ValidatePlan(domain.ChartPlan{ChartType: "bar", XColumn: "x", Aggregation: "sum"}))
	assert.Error(t, ValidatePlan(domain.ChartPlan{ChartType: "radar", XColumn: "x", Aggregation: "sum"}))
	assert.Error(t, ValidatePlan(domain.ChartPlan{ChartType: "bar", XColumn: "x", Aggregation: "median"}))
	assert.Error(t, ValidatePlan(domain.ChartPlan{ChartType: "bar", Aggregation: "sum"}))
}
