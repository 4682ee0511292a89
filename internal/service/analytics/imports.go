package analytics

import (
	"github.com/samber/lo"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

const (
	topPorts     = 10
	topProducts  = 15
	topImporters = 10
)

func portKey(r domain.ShipmentRecord) string {
	return lo.CoalesceOrEmpty(r.Port, r.PortCode)
}

func importerKey(r domain.ShipmentRecord) string {
	return lo.CoalesceOrEmpty(r.ImporterName, r.IECBR)
}

// ImportsByPort counts Bills of Entry per port, top 10.
func ImportsByPort(records []domain.ShipmentRecord) []domain.KeyValue {
	return TopN(CountBy(records, func(r domain.ShipmentRecord) (string, bool) {
		return lo.CoalesceOrEmpty(portKey(r), "Unknown"), true
	}), topPorts)
}

// ImportsByProduct counts entries per invoice title, top 15.
func ImportsByProduct(records []domain.ShipmentRecord) []domain.KeyValue {
	return TopN(CountBy(records, func(r domain.ShipmentRecord) (string, bool) {
		return lo.CoalesceOrEmpty(r.InvoiceTitle, "Unknown Product"), true
	}), topProducts)
}

// ImportsByBEType counts entries per Bill of Entry type.
func ImportsByBEType(records []domain.ShipmentRecord) []domain.KeyValue {
	return TopN(CountBy(records, func(r domain.ShipmentRecord) (string, bool) {
		return lo.CoalesceOrEmpty(r.BEType, "Unknown"), true
	}), 0)
}

// ImportTimeline counts entries per BE month in chronological order.
func ImportTimeline(records []domain.ShipmentRecord) []domain.KeyValue {
	return Chronological(CountBy(records, func(r domain.ShipmentRecord) (string, bool) {
		if r.BEDate == "" {
			return "", false
		}
		if len(r.BEDate) < 7 {
			return r.BEDate, true
		}
		return r.BEDate[:7], true
	}))
}

// ImportsByImporter counts entries per importer, top 10.
func ImportsByImporter(records []domain.ShipmentRecord) []domain.KeyValue {
	return TopN(CountBy(records, func(r domain.ShipmentRecord) (string, bool) {
		return lo.CoalesceOrEmpty(importerKey(r), "Unknown Importer"), true
	}), topImporters)
}

// ImportSummary counts distinct non-empty ports, products and importers.
func ImportSummary(records []domain.ShipmentRecord) domain.ImportSummary {
	distinct := func(key func(domain.ShipmentRecord) string) int {
		return len(lo.Uniq(lo.Compact(lo.Map(records, func(r domain.ShipmentRecord, _ int) string { return key(r) }))))
	}
	return domain.ImportSummary{
		TotalRecords:    len(records),
		UniquePorts:     distinct(portKey),
		UniqueProducts:  distinct(func(r domain.ShipmentRecord) string { return r.InvoiceTitle }),
		UniqueImporters: distinct(importerKey),
	}
}

// BuildImportDashboard runs every Bill of Entry aggregate.
func BuildImportDashboard(records []domain.ShipmentRecord) domain.ImportDashboard {
	return domain.ImportDashboard{
		Summary:    ImportSummary(records),
		ByPort:     ImportsByPort(records),
		ByProduct:  ImportsByProduct(records),
		ByBEType:   ImportsByBEType(records),
		Timeline:   ImportTimeline(records),
		ByImporter: ImportsByImporter(records),
	}
}
