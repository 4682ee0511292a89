// Package ingest turns uploaded, generated and embedded trade rows into
// canonical shipment records.
package ingest

import (
	"github.com/seu-repo/tradeinsight/internal/domain"
)

const unknown = "Unknown"

type fieldKind int

const (
	kindString fieldKind = iota
	kindFloat
	kindDate
	kindBool
)

// fieldRule binds a canonical field to the raw keys that may carry it, in priority order.
type fieldRule struct {
	keys     []string
	kind     fieldKind
	fallback string
	assign   func(r *domain.ShipmentRecord, s string, f float64, b bool)
}

var fieldRules = []fieldRule{
	{keys: []string{"Date", "date", "be_date"}, kind: kindDate,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.Date = s }},
	{keys: []string{"Shipment_ID", "shipment_id", "shipmentId", "be_no"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.ShipmentID = s }},
	{keys: []string{"Product", "product", "invoice_title"}, kind: kindString, fallback: unknown,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.Product = s }},
	{keys: []string{"Quantity", "quantity", "qty"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.Quantity = f }},
	{keys: []string{"Price_per_unit", "price_per_unit", "pricePerUnit"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.PricePerUnit = f }},
	{keys: []string{"Currency", "currency"}, kind: kindString, fallback: unknown,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.Currency = s }},
	{keys: []string{"Market_Impact_Score", "market_impact_score"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.MarketImpactScore = f }},
	{keys: []string{"Delay_in_days", "delay_in_days"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.DelayInDays = f }},
	{keys: []string{"Risk_Score", "risk_score"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.RiskScore = f }},
	{keys: []string{"Profit", "profit"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.Profit = f }},
	{keys: []string{"Cost", "cost"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.Cost = f }},
	{keys: []string{"Country", "country", "country_of_origin", "countryOfOrigin"}, kind: kindString, fallback: unknown,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.CountryOfOrigin = s }},
	{keys: []string{"port", "Port"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.Port = s }},
	{keys: []string{"Value", "value"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.Value = f }},
	{keys: []string{"assessable_value", "assessableValue"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.AssessableValue = f }},
	{keys: []string{"Total_Value", "total_value", "totalValue"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.TotalValue = f }},
	{keys: []string{"Duty", "duty_amount", "dutyAmount"}, kind: kindFloat,
		assign: func(r *domain.ShipmentRecord, _ string, f float64, _ bool) { r.DutyAmount = f }},
	{keys: []string{"Anomaly", "anomaly"}, kind: kindBool,
		assign: func(r *domain.ShipmentRecord, _ string, _ float64, b bool) { r.Anomaly = b }},
	{keys: []string{"invoice_title"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.InvoiceTitle = s }},
	{keys: []string{"port_code"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.PortCode = s }},
	{keys: []string{"be_type"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.BEType = s }},
	{keys: []string{"be_date"}, kind: kindDate,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.BEDate = s }},
	{keys: []string{"importer_name"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.ImporterName = s }},
	{keys: []string{"iec_br"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.IECBR = s }},
	{keys: []string{"hs_code", "hsCode", "HS_Code"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.HSCode = s }},
	{keys: []string{"exporter_name", "supplier_name"}, kind: kindString,
		assign: func(r *domain.ShipmentRecord, s string, _ float64, _ bool) { r.ExporterName = s }},
}

// Normalize maps one raw row to a ShipmentRecord. Every field degrades to its
// default independently; it never fails.
func Normalize(raw domain.RawRecord) domain.ShipmentRecord {
	var rec domain.ShipmentRecord
	for _, rule := range fieldRules {
		v, ok := lookup(raw, rule.keys)
		switch rule.kind {
		case kindFloat:
			rule.assign(&rec, "", toFloat(v), false)
		case kindBool:
			rule.assign(&rec, "", 0, ok && toBool(v))
		default:
			s := ""
			if ok {
				if rule.kind == kindDate {
					s = toDate(v)
				} else {
					s = toString(v)
				}
			}
			if s == "" {
				s = rule.fallback
			}
			rule.assign(&rec, s, 0, false)
		}
	}
	return rec
}

// NormalizeAll maps every row and returns a new slice.
func NormalizeAll(raws []domain.RawRecord) []domain.ShipmentRecord {
	out := make([]domain.ShipmentRecord, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}
