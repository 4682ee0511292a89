// Package sustainability estimates shipment CO2 emissions from origin
// distance, estimated weight and inferred transport mode.
package sustainability

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

const (
	defaultDistanceKm = 5000
	defaultQuantity   = 100
	kgPerUnit         = 10
	// benchmarkFactor is a mostly-sea fleet, in kg CO2 per ton-km.
	benchmarkFactor    = 0.02
	emptyDatasetFactor = 0.05
	savingsShare       = 0.3
)

// CountryDistances holds approximate shipping distances to India in km.
var CountryDistances = map[string]float64{
	"China":        5000,
	"USA":          14000,
	"UAE":          2500,
	"Germany":      7000,
	"UK":           7500,
	"Japan":        6000,
	"Singapore":    3500,
	"South Korea":  5500,
	"Saudi Arabia": 3000,
	"Indonesia":    4000,
	"Vietnam":      3500,
	"Thailand":     3000,
	"Malaysia":     3000,
	"Australia":    9000,
	"Brazil":       15000,
	"Canada":       13000,
	"France":       7500,
	"Italy":        6500,
	"Netherlands":  7000,
	"Russia":       5000,
	"Spain":        8000,
	"Turkey":       5000,
}

// EmissionFactors are kg CO2 per ton-km. Road and Rail are never inferred.
var EmissionFactors = map[domain.TransportMode]float64{
	domain.TransportSea:  0.01,
	domain.TransportAir:  0.50,
	domain.TransportRoad: 0.10,
	domain.TransportRail: 0.03,
}

// Distance returns the km for a country, 5000 when unknown.
func Distance(country string) float64 {
	if d, ok := CountryDistances[country]; ok && d > 0 {
		return d
	}
	return defaultDistanceKm
}

// InferMode returns Air when the port name mentions "air", otherwise Sea.
func InferMode(port string) domain.TransportMode {
	if strings.Contains(strings.ToLower(port), "air") {
		return domain.TransportAir
	}
	return domain.TransportSea
}

// EstimateRecord computes the emission model for one record.
func EstimateRecord(r domain.ShipmentRecord) domain.EmissionEstimate {
	country := r.CountryOfOrigin
	if country == "" {
		country = "Unknown"
	}
	product := r.Product
	if product == "" {
		product = "Unknown"
	}

	quantity := r.Quantity
	if quantity == 0 {
		quantity = defaultQuantity
	}
	weight := quantity * kgPerUnit / 1000
	distance := Distance(country)
	mode := InferMode(r.Port)

	return domain.EmissionEstimate{
		Country:    country,
		Product:    product,
		DistanceKm: distance,
		WeightTons: weight,
		Mode:       mode,
		Emissions:  weight * distance * EmissionFactors[mode] / 1000,
	}
}

// Estimate aggregates emissions over all records and derives the green score.
func Estimate(records []domain.ShipmentRecord) domain.SustainabilityMetrics {
	m := domain.SustainabilityMetrics{
		CountryEmissions: make(map[string]float64),
		ProductEmissions: make(map[string]float64),
	}

	var total, totalDistance, totalWeight float64
	for _, r := range records {
		e := EstimateRecord(r)
		total += e.Emissions
		totalDistance += e.DistanceKm
		totalWeight += e.WeightTons
		m.CountryEmissions[e.Country] += e.Emissions
		m.ProductEmissions[e.Product] += e.Emissions
	}

	factor := emptyDatasetFactor
	if totalWeight > 0 {
		avgDistance := totalDistance / float64(len(records))
		factor = total * 1000 / (totalWeight * avgDistance)
	}

	m.AverageFactor = factor
	m.GreenScore = GreenScore(factor)
	m.TotalEmissions = round2(total)
	m.PotentialSavings = round2(total * savingsShare)
	return m
}

// GreenScore maps an average emission factor to 0..100, higher is greener.
func GreenScore(factor float64) int {
	penalty := math.Max(0, math.Min(100, factor/benchmarkFactor*20))
	return int(math.Round(100 - penalty))
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
