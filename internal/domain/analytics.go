package domain

// KeyValue is one entry of a sorted aggregate.
type KeyValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// ProductProfitability sums profit, cost and revenue for a product.
type ProductProfitability struct {
	Profit  float64 `json:"profit"`
	Cost    float64 `json:"cost"`
	Revenue float64 `json:"revenue"`
}

// DelayRisk holds per-product averages.
type DelayRisk struct {
	AvgDelay float64 `json:"avg_delay"`
	AvgRisk  float64 `json:"avg_risk"`
	Count    int     `json:"count"`
}

// CurrencyImpact holds per-currency averages.
type CurrencyImpact struct {
	AvgProfit float64 `json:"avg_profit"`
	AvgImpact float64 `json:"avg_impact"`
	Count     int     `json:"count"`
}

// ForecastResult is the observed monthly revenue series and its linear projection.
// Forecast slices are empty when no line could be fitted.
type ForecastResult struct {
	Months         []string  `json:"months"`
	Values         []float64 `json:"values"`
	ForecastMonths []string  `json:"forecast_months"`
	ForecastValues []float64 `json:"forecast_values"`
	Slope          float64   `json:"slope"`
	Intercept      float64   `json:"intercept"`
}

// Dashboard bundles every chart aggregate over a shipment dataset.
type Dashboard struct {
	RecordCount    int                             `json:"record_count"`
	ShipmentTrend  map[string]map[string]float64   `json:"shipment_trend"`
	Profitability  map[string]ProductProfitability `json:"profitability"`
	TopProducts    []KeyValue                      `json:"top_products"`
	SeasonalDemand map[string]float64              `json:"seasonal_demand"`
	DelayRisk      map[string]DelayRisk            `json:"delay_risk"`
	CurrencyImpact map[string]CurrencyImpact       `json:"currency_impact"`
	Forecast       ForecastResult                  `json:"forecast"`
	TotalRevenue   float64                         `json:"total_revenue"`
	TotalProfit    float64                         `json:"total_profit"`
	AnomalyCount   int                             `json:"anomaly_count"`
}

// ImportSummary counts distinct entities in a Bill of Entry dataset.
type ImportSummary struct {
	TotalRecords    int `json:"total_records"`
	UniquePorts     int `json:"unique_ports"`
	UniqueProducts  int `json:"unique_products"`
	UniqueImporters int `json:"unique_importers"`
}

// ImportDashboard bundles the Bill of Entry charts.
type ImportDashboard struct {
	Summary    ImportSummary `json:"summary"`
	ByPort     []KeyValue    `json:"by_port"`
	ByProduct  []KeyValue    `json:"by_product"`
	ByBEType   []KeyValue    `json:"by_be_type"`
	Timeline   []KeyValue    `json:"timeline"`
	ByImporter []KeyValue    `json:"by_importer"`
}
