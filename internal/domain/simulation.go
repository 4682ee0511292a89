package domain

import "math"

// SimulationParams holds the percentage deltas applied by the what-if simulator.
type SimulationParams struct {
	ShippingCostChange  float64 `json:"shipping_cost_change"`
	DutyRateChange      float64 `json:"duty_rate_change"`
	DemandChange        float64 `json:"demand_change"`
	SupplierPriceChange float64 `json:"supplier_price_change"`
}

// Finite reports whether every lever is a real number.
func (p SimulationParams) Finite() bool {
	return allFinite(p.ShippingCostChange, p.DutyRateChange, p.DemandChange, p.SupplierPriceChange)
}

// ImpactBreakdown isolates each lever's effect. Figures ignore the demand
// volume factor, so they do not add up to the profit delta.
type ImpactBreakdown struct {
	Shipping      float64 `json:"shipping"`
	Duty          float64 `json:"duty"`
	Material      float64 `json:"material"`
	RevenueImpact float64 `json:"revenue_impact"`
}

type SimulationResult struct {
	OriginalProfit   float64         `json:"original_profit"`
	NewProfit        float64         `json:"new_profit"`
	ProfitChange     float64         `json:"profit_change"` // percent
	ProjectedRevenue float64         `json:"projected_revenue"`
	ProjectedCosts   float64         `json:"projected_costs"`
	Breakdown        ImpactBreakdown `json:"breakdown"`
}

// Finite is false when an extreme lever overflowed the model.
func (r SimulationResult) Finite() bool {
	return allFinite(r.OriginalProfit, r.NewProfit, r.ProfitChange, r.ProjectedRevenue, r.ProjectedCosts,
		r.Breakdown.Shipping, r.Breakdown.Duty, r.Breakdown.Material, r.Breakdown.RevenueImpact)
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SweepPoint is one step of a single-lever sensitivity sweep.
type SweepPoint struct {
	Value        float64 `json:"value"`
	NewProfit    float64 `json:"new_profit"`
	ProfitChange float64 `json:"profit_change"`
}
