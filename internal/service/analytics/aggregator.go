// Package analytics computes chart aggregates and revenue forecasts over
// shipment records. Every function here is pure.
package analytics

import (
	"sort"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// GroupAndReduce buckets records by keyFn and folds each bucket with reduce,
// starting from init(). Records for which keyFn reports false are skipped.
func GroupAndReduce[K comparable, A any](
	records []domain.ShipmentRecord,
	keyFn func(domain.ShipmentRecord) (K, bool),
	init func() A,
	reduce func(A, domain.ShipmentRecord) A,
) map[K]A {
	out := make(map[K]A)
	for _, rec := range records {
		key, ok := keyFn(rec)
		if !ok {
			continue
		}
		acc, seen := out[key]
		if !seen {
			acc = init()
		}
		out[key] = reduce(acc, rec)
	}
	return out
}

// SumBy totals field per group.
func SumBy(records []domain.ShipmentRecord, keyFn func(domain.ShipmentRecord) (string, bool), field func(domain.ShipmentRecord) float64) map[string]float64 {
	return GroupAndReduce(records, keyFn,
		func() float64 { return 0 },
		func(acc float64, r domain.ShipmentRecord) float64 { return acc + field(r) },
	)
}

// CountBy counts records per group.
func CountBy(records []domain.ShipmentRecord, keyFn func(domain.ShipmentRecord) (string, bool)) map[string]float64 {
	return SumBy(records, keyFn, func(domain.ShipmentRecord) float64 { return 1 })
}

type meanAcc struct {
	sums  []float64
	count int
}

// averageBy returns per-group means of several fields, each divided by that group's own count.
func averageBy(records []domain.ShipmentRecord, keyFn func(domain.ShipmentRecord) (string, bool), fields ...func(domain.ShipmentRecord) float64) map[string]meanAcc {
	return GroupAndReduce(records, keyFn,
		func() meanAcc { return meanAcc{sums: make([]float64, len(fields))} },
		func(acc meanAcc, r domain.ShipmentRecord) meanAcc {
			for i, f := range fields {
				acc.sums[i] += f(r)
			}
			acc.count++
			return acc
		},
	)
}

func (m meanAcc) mean(i int) float64 {
	if m.count == 0 {
		return 0
	}
	return m.sums[i] / float64(m.count)
}

func byProduct(r domain.ShipmentRecord) (string, bool)  { return keyOrUnknown(r.Product), true }
func byCurrency(r domain.ShipmentRecord) (string, bool) { return keyOrUnknown(r.Currency), true }
func byMonth(r domain.ShipmentRecord) (string, bool)    { m := r.Month(); return m, m != "" }

func keyOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// ShipmentTrend sums quantity per month and product. Records without a date are skipped.
func ShipmentTrend(records []domain.ShipmentRecord) map[string]map[string]float64 {
	return GroupAndReduce(records, byMonth,
		func() map[string]float64 { return make(map[string]float64) },
		func(acc map[string]float64, r domain.ShipmentRecord) map[string]float64 {
			acc[keyOrUnknown(r.Product)] += r.Quantity
			return acc
		},
	)
}

// ProfitabilityByProduct sums profit, cost and revenue per product.
func ProfitabilityByProduct(records []domain.ShipmentRecord) map[string]domain.ProductProfitability {
	return GroupAndReduce(records, byProduct,
		func() domain.ProductProfitability { return domain.ProductProfitability{} },
		func(acc domain.ProductProfitability, r domain.ShipmentRecord) domain.ProductProfitability {
			acc.Profit += r.Profit
			acc.Cost += r.Cost
			acc.Revenue += r.Revenue()
			return acc
		},
	)
}

// SeasonalDemand sums quantity per calendar month (01..12).
func SeasonalDemand(records []domain.ShipmentRecord) map[string]float64 {
	return SumBy(records,
		func(r domain.ShipmentRecord) (string, bool) { m := r.MonthOfYear(); return m, m != "" },
		func(r domain.ShipmentRecord) float64 { return r.Quantity },
	)
}

// DelayRiskByProduct averages delay and risk per product.
func DelayRiskByProduct(records []domain.ShipmentRecord) map[string]domain.DelayRisk {
	groups := averageBy(records, byProduct,
		func(r domain.ShipmentRecord) float64 { return r.DelayInDays },
		func(r domain.ShipmentRecord) float64 { return r.RiskScore },
	)
	out := make(map[string]domain.DelayRisk, len(groups))
	for k, g := range groups {
		out[k] = domain.DelayRisk{AvgDelay: g.mean(0), AvgRisk: g.mean(1), Count: g.count}
	}
	return out
}

// CurrencyImpactByCurrency averages profit and market impact per currency.
func CurrencyImpactByCurrency(records []domain.ShipmentRecord) map[string]domain.CurrencyImpact {
	groups := averageBy(records, byCurrency,
		func(r domain.ShipmentRecord) float64 { return r.Profit },
		func(r domain.ShipmentRecord) float64 { return r.MarketImpactScore },
	)
	out := make(map[string]domain.CurrencyImpact, len(groups))
	for k, g := range groups {
		out[k] = domain.CurrencyImpact{AvgProfit: g.mean(0), AvgImpact: g.mean(1), Count: g.count}
	}
	return out
}

// TopN sorts entries by value descending, breaking ties by key, and keeps the first n.
// n <= 0 keeps everything.
func TopN(values map[string]float64, n int) []domain.KeyValue {
	out := make([]domain.KeyValue, 0, len(values))
	for k, v := range values {
		out = append(out, domain.KeyValue{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SortedKeys returns the map keys in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Chronological returns entries ordered by key ascending.
func Chronological(values map[string]float64) []domain.KeyValue {
	out := make([]domain.KeyValue, 0, len(values))
	for _, k := range SortedKeys(values) {
		out = append(out, domain.KeyValue{Key: k, Value: values[k]})
	}
	return out
}

// BuildDashboard runs every shipment aggregate.
func BuildDashboard(records []domain.ShipmentRecord) domain.Dashboard {
	profitability := ProfitabilityByProduct(records)
	revenueByProduct := make(map[string]float64, len(profitability))
	for k, p := range profitability {
		revenueByProduct[k] = p.Revenue
	}

	d := domain.Dashboard{
		RecordCount:    len(records),
		ShipmentTrend:  ShipmentTrend(records),
		Profitability:  profitability,
		TopProducts:    TopN(revenueByProduct, 3),
		SeasonalDemand: SeasonalDemand(records),
		DelayRisk:      DelayRiskByProduct(records),
		CurrencyImpact: CurrencyImpactByCurrency(records),
		Forecast:       Forecast(records),
	}
	for _, r := range records {
		d.TotalRevenue += r.Revenue()
		d.TotalProfit += r.Profit
		if r.Anomaly {
			d.AnomalyCount++
		}
	}
	return d
}
