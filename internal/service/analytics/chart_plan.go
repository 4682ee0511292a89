package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

const maxCategoricalPoints = 20

var (
	validChartTypes   = map[string]bool{"bar": true, "line": true, "pie": true, "scatter": true, "histogram": true}
	validAggregations = map[string]bool{"sum": true, "count": true, "average": true, "none": true}
)

// ValidatePlan checks the plan names a supported chart and aggregation.
func ValidatePlan(plan domain.ChartPlan) error {
	if !validChartTypes[plan.ChartType] {
		return fmt.Errorf("unsupported chart type %q", plan.ChartType)
	}
	if !validAggregations[plan.Aggregation] {
		return fmt.Errorf("unsupported aggregation %q", plan.Aggregation)
	}
	if plan.XColumn == "" {
		return fmt.Errorf("chart plan has no x column")
	}
	return nil
}

// ExecuteChartPlan aggregates raw rows as the plan describes and returns a
// Plotly-style figure. Bar and pie charts keep the 20 largest points.
func ExecuteChartPlan(plan domain.ChartPlan, rows []domain.RawRecord) domain.ChartConfig {
	var xs []string
	var ys []float64

	switch plan.Aggregation {
	case "none":
		for _, row := range rows {
			xs = append(xs, cellString(row[plan.XColumn]))
			ys = append(ys, cellFloat(row[plan.YColumn]))
		}
	default:
		groups := make(map[string][]float64)
		var order []string
		for _, row := range rows {
			key := cellString(row[plan.XColumn])
			if key == "" {
				key = "Unknown"
			}
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], cellFloat(row[plan.YColumn]))
		}
		for _, key := range order {
			vals := groups[key]
			xs = append(xs, key)
			ys = append(ys, reduceValues(plan.Aggregation, vals))
		}
	}

	if plan.ChartType == "bar" || plan.ChartType == "pie" {
		xs, ys = sortDescending(xs, ys, maxCategoricalPoints)
	}

	trace := domain.ChartTrace{Type: plan.ChartType}
	if plan.ChartType == "pie" {
		trace.Labels, trace.Values = xs, ys
	} else {
		trace.X, trace.Y = xs, ys
	}
	if plan.ChartType == "scatter" {
		trace.Mode = "markers"
	}
	if len(plan.Colors) > 0 {
		trace.Marker = map[string]any{"color": plan.Colors}
	}

	return domain.ChartConfig{
		Data: []domain.ChartTrace{trace},
		Layout: map[string]any{
			"title":    plan.Title,
			"xaxis":    map[string]any{"title": plan.XAxisLabel, "automargin": true},
			"yaxis":    map[string]any{"title": plan.YAxisLabel, "automargin": true},
			"template": "plotly_white",
			"height":   450,
		},
	}
}

func reduceValues(aggregation string, vals []float64) float64 {
	switch aggregation {
	case "count":
		return float64(len(vals))
	case "sum", "average":
		var sum float64
		for _, v := range vals {
			sum += v
		}
		if aggregation == "average" && len(vals) > 0 {
			return sum / float64(len(vals))
		}
		return sum
	}
	return 0
}

// sortDescending orders points by y descending; the sort is stable so equal
// values keep first-seen order.
func sortDescending(xs []string, ys []float64, limit int) ([]string, []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return ys[idx[a]] > ys[idx[b]] })
	if len(idx) > limit {
		idx = idx[:limit]
	}
	outX := make([]string, len(idx))
	outY := make([]float64, len(idx))
	for i, j := range idx {
		outX[i], outY[i] = xs[j], ys[j]
	}
	return outX, outY
}

func cellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

func cellFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
