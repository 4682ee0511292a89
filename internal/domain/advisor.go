package domain

// HSClassification is the customs classification suggested for a product description.
type HSClassification struct {
	HSCode          string `json:"hs_code"`
	Title           string `json:"title"`
	DutyRate        string `json:"duty_rate"`
	GSTRate         string `json:"gst_rate"`
	Reasoning       string `json:"reasoning"`
	ComplianceNotes string `json:"compliance_notes"`
}

type SustainabilityTip struct {
	Title       string `json:"title"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type MarketOpportunity struct {
	Country  string `json:"country"`
	Flag     string `json:"flag"`
	Premium  string `json:"premium"`
	Reason   string `json:"reason"`
	Strategy string `json:"strategy"`
}

type ProductOpportunities struct {
	Product       string              `json:"product"`
	Opportunities []MarketOpportunity `json:"opportunities"`
}

// Report is an LLM-written strategy report.
type Report struct {
	Focus    string `json:"focus"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// ChartPlan is the chart an LLM picked for a natural-language query.
type ChartPlan struct {
	ChartType   string   `json:"chartType"`
	XColumn     string   `json:"xColumn"`
	YColumn     string   `json:"yColumn,omitempty"`
	Aggregation string   `json:"aggregation"`
	Title       string   `json:"title"`
	XAxisLabel  string   `json:"xAxisLabel,omitempty"`
	YAxisLabel  string   `json:"yAxisLabel,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// ChartTrace is one Plotly-style data series.
type ChartTrace struct {
	Type   string         `json:"type"`
	X      []string       `json:"x,omitempty"`
	Y      []float64      `json:"y,omitempty"`
	Labels []string       `json:"labels,omitempty"`
	Values []float64      `json:"values,omitempty"`
	Mode   string         `json:"mode,omitempty"`
	Marker map[string]any `json:"marker,omitempty"`
}

type ChartConfig struct {
	Data   []ChartTrace   `json:"data"`
	Layout map[string]any `json:"layout"`
}
