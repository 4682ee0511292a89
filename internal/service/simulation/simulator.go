// Package simulation runs the what-if profit model over shipment records.
package simulation

import (
	"math"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// Fixed shares of the transaction value used by the cost model.
const (
	materialShare = 0.6
	shippingShare = 0.1
	dutyShare     = 0.1
	revenueShare  = 1.2
)

// Range is the UI slider bound for a lever. Not enforced by Simulate.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Lever names a single simulation parameter.
type Lever string

const (
	LeverShipping Lever = "shipping"
	LeverDuty     Lever = "duty"
	LeverDemand   Lever = "demand"
	LeverSupplier Lever = "supplier"
)

var ParamRanges = map[Lever]Range{
	LeverShipping: {Min: -50, Max: 50},
	LeverDuty:     {Min: -20, Max: 20},
	LeverDemand:   {Min: -50, Max: 50},
	LeverSupplier: {Min: -20, Max: 20},
}

// DefaultParams leaves every lever untouched.
func DefaultParams() domain.SimulationParams {
	return domain.SimulationParams{}
}

// transactionValue picks the first non-zero of the explicit value fields,
// falling back to cost plus profit.
func transactionValue(r domain.ShipmentRecord) float64 {
	for _, v := range []float64{r.Value, r.AssessableValue, r.TotalValue} {
		if v != 0 {
			return v
		}
	}
	return r.Cost + r.Profit
}

type baseline struct {
	material, shipping, duty, revenue float64
}

func (b baseline) cost() float64 { return b.material + b.shipping + b.duty }

func computeBaseline(records []domain.ShipmentRecord) baseline {
	var b baseline
	for _, r := range records {
		v := transactionValue(r)
		duty := r.DutyAmount
		if duty == 0 {
			duty = dutyShare * v
		}
		b.material += materialShare * v
		b.shipping += shippingShare * v
		b.duty += duty
		b.revenue += revenueShare * v
	}
	return b
}

func scale(v, pct float64) float64 { return v * (1 + pct/100) }

// Simulate applies the four percentage levers. Demand scales revenue and,
// through the volume factor, the whole adjusted cost bundle.
func Simulate(records []domain.ShipmentRecord, p domain.SimulationParams) domain.SimulationResult {
	b := computeBaseline(records)
	volumeFactor := 1 + p.DemandChange/100

	newCost := (scale(b.material, p.SupplierPriceChange) +
		scale(b.shipping, p.ShippingCostChange) +
		scale(b.duty, p.DutyRateChange)) * volumeFactor
	newRevenue := scale(b.revenue, p.DemandChange)

	originalProfit := b.revenue - b.cost()
	newProfit := newRevenue - newCost

	var change float64
	if originalProfit != 0 {
		change = (newProfit - originalProfit) / math.Abs(originalProfit) * 100
	}

	return domain.SimulationResult{
		OriginalProfit:   originalProfit,
		NewProfit:        newProfit,
		ProfitChange:     change,
		ProjectedRevenue: newRevenue,
		ProjectedCosts:   newCost,
		Breakdown: domain.ImpactBreakdown{
			Shipping:      b.shipping * p.ShippingCostChange / 100,
			Duty:          b.duty * p.DutyRateChange / 100,
			Material:      b.material * p.SupplierPriceChange / 100,
			RevenueImpact: newRevenue - b.revenue,
		},
	}
}

// Sweep runs Simulate once per value of a single lever, others held at base.
func Sweep(records []domain.ShipmentRecord, base domain.SimulationParams, lever Lever, values []float64) []domain.SweepPoint {
	out := make([]domain.SweepPoint, 0, len(values))
	for _, v := range values {
		p := base
		switch lever {
		case LeverShipping:
			p.ShippingCostChange = v
		case LeverDuty:
			p.DutyRateChange = v
		case LeverDemand:
			p.DemandChange = v
		case LeverSupplier:
			p.SupplierPriceChange = v
		}
		res := Simulate(records, p)
		out = append(out, domain.SweepPoint{Value: v, NewProfit: res.NewProfit, ProfitChange: res.ProfitChange})
	}
	return out
}

// Steps returns evenly spaced values from r.Min to r.Max inclusive.
func Steps(r Range, n int) []float64 {
	if n < 2 {
		return []float64{r.Min}
	}
	out := make([]float64, n)
	step := (r.Max - r.Min) / float64(n-1)
	for i := range out {
		out[i] = r.Min + step*float64(i)
	}
	return out
}
