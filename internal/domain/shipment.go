package domain

// RawRecord is one uploaded, generated or stored row before normalization.
// Keys follow whatever schema the source used.
type RawRecord map[string]any

// ShipmentRecord is the canonical form of a trade row after normalization.
// Numeric fields are never NaN or Inf; missing values are 0.
type ShipmentRecord struct {
	Date              string  `json:"date"` // YYYY-MM-DD, empty when unknown
	ShipmentID        string  `json:"shipment_id,omitempty"`
	Product           string  `json:"product"`
	Quantity          float64 `json:"quantity"`
	PricePerUnit      float64 `json:"price_per_unit"`
	Currency          string  `json:"currency"`
	MarketImpactScore float64 `json:"market_impact_score"`
	DelayInDays       float64 `json:"delay_in_days"`
	RiskScore         float64 `json:"risk_score"`
	Profit            float64 `json:"profit"`
	Cost              float64 `json:"cost"`
	CountryOfOrigin   string  `json:"country_of_origin"`
	Port              string  `json:"port,omitempty"`
	Value             float64 `json:"value,omitempty"`
	AssessableValue   float64 `json:"assessable_value,omitempty"`
	TotalValue        float64 `json:"total_value,omitempty"`
	DutyAmount        float64 `json:"duty_amount,omitempty"`
	Anomaly           bool    `json:"anomaly"`

	// Bill of Entry (import declaration) fields
	InvoiceTitle string `json:"invoice_title,omitempty"`
	PortCode     string `json:"port_code,omitempty"`
	BEType       string `json:"be_type,omitempty"`
	BEDate       string `json:"be_date,omitempty"`
	ImporterName string `json:"importer_name,omitempty"`
	IECBR        string `json:"iec_br,omitempty"`
	HSCode       string `json:"hs_code,omitempty"`
	ExporterName string `json:"exporter_name,omitempty"`
}

// Revenue is quantity times unit price.
func (r ShipmentRecord) Revenue() float64 {
	return r.Quantity * r.PricePerUnit
}

// Month returns the YYYY-MM bucket of the record date, or "" without a date.
func (r ShipmentRecord) Month() string {
	if len(r.Date) < 7 {
		return ""
	}
	return r.Date[:7]
}

// MonthOfYear returns the MM part of the record date, or "".
func (r ShipmentRecord) MonthOfYear() string {
	if len(r.Date) < 7 {
		return ""
	}
	return r.Date[5:7]
}
