package analytics

import (
	"fmt"
	"math"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// ForecastHorizon is the number of projected months.
const ForecastHorizon = 3

// FitLine fits y = slope*x + intercept by least squares with x = 0..n-1.
// ok is false when fewer than two points exist or the fit is not finite.
func FitLine(ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(ys))
	if len(ys) < 2 {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return 0, 0, false
	}
	return slope, intercept, true
}

// MonthlyRevenue sums quantity*price per YYYY-MM.
func MonthlyRevenue(records []domain.ShipmentRecord) map[string]float64 {
	return SumBy(records, byMonth, func(r domain.ShipmentRecord) float64 { return r.Revenue() })
}

// Forecast projects monthly revenue ForecastHorizon months past the last observed month.
// Months without records are absent from the series, not zero.
func Forecast(records []domain.ShipmentRecord) domain.ForecastResult {
	monthly := MonthlyRevenue(records)
	months := SortedKeys(monthly)

	res := domain.ForecastResult{
		Months:         months,
		Values:         make([]float64, len(months)),
		ForecastMonths: []string{},
		ForecastValues: []float64{},
	}
	for i, m := range months {
		res.Values[i] = monthly[m]
	}

	slope, intercept, ok := FitLine(res.Values)
	if !ok {
		return res
	}
	res.Slope = slope
	res.Intercept = intercept

	n := len(months)
	last := months[n-1]
	for i := 1; i <= ForecastHorizon; i++ {
		label, err := addMonths(last, i)
		if err != nil {
			return domain.ForecastResult{Months: res.Months, Values: res.Values, ForecastMonths: []string{}, ForecastValues: []float64{}}
		}
		res.ForecastMonths = append(res.ForecastMonths, label)
		res.ForecastValues = append(res.ForecastValues, slope*float64(n+i-1)+intercept)
	}
	return res
}

func addMonths(yearMonth string, delta int) (string, error) {
	var year, month int
	if _, err := fmt.Sscanf(yearMonth, "%d-%d", &year, &month); err != nil {
		return "", fmt.Errorf("invalid month %q: %w", yearMonth, err)
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month %q", yearMonth)
	}
	total := year*12 + (month - 1) + delta
	return fmt.Sprintf("%04d-%02d", total/12, total%12+1), nil
}
