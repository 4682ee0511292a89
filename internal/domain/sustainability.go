package domain

type TransportMode string

const (
	TransportSea  TransportMode = "Sea"
	TransportAir  TransportMode = "Air"
	TransportRoad TransportMode = "Road"
	TransportRail TransportMode = "Rail"
)

// EmissionEstimate is the per-record breakdown of the CO2 model.
type EmissionEstimate struct {
	Country    string        `json:"country"`
	Product    string        `json:"product"`
	DistanceKm float64       `json:"distance_km"`
	WeightTons float64       `json:"weight_tons"`
	Mode       TransportMode `json:"mode"`
	Emissions  float64       `json:"emissions"` // tons CO2
}

type SustainabilityMetrics struct {
	TotalEmissions   float64            `json:"total_emissions"`
	GreenScore       int                `json:"green_score"`
	PotentialSavings float64            `json:"potential_savings"`
	AverageFactor    float64            `json:"average_factor"`
	CountryEmissions map[string]float64 `json:"country_emissions"`
	ProductEmissions map[string]float64 `json:"product_emissions"`
}
