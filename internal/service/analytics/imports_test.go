package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

func TestImportsByPort_FallbacksAndLimit(t *testing.T) {
	var records []domain.ShipmentRecord
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			records = append(records, domain.ShipmentRecord{Port: fmt.Sprintf("P%02d", i)})
		}
	}
	records = append(records, domain.ShipmentRecord{PortCode: "INNSA1"}, domain.ShipmentRecord{})

	top := ImportsByPort(records)

	require.Len(t, top, 10)
	assert.Equal(t, domain.KeyValue{Key: "P11", Value: 12}, top[0])

	all := CountBy(records, func(r domain.ShipmentRecord) (string, bool) { return portKey(r), true })
	assert.Equal(t, 1.0, all["INNSA1"])
}

func TestImportsByProductAndImporter(t *testing.T) {
	records := []domain.ShipmentRecord{
		{InvoiceTitle: "PVC Resin", ImporterName: "JSW Steel"},
		{InvoiceTitle: "PVC Resin", IECBR: "1234567890"},
		{},
	}

	assert.Equal(t, []domain.KeyValue{{Key: "PVC Resin", Value: 2}, {Key: "Unknown Product", Value: 1}}, ImportsByProduct(records))
	byImporter := ImportsByImporter(records)
	assert.Len(t, byImporter, 3)
	assert.Contains(t, byImporter, domain.KeyValue{Key: "Unknown Importer", Value: 1})
	assert.Contains(t, byImporter, domain.KeyValue{Key: "1234567890", Value: 1})
}

func TestImportTimeline_Chronological(t *testing.T) {
	records := []domain.ShipmentRecord{
		{BEDate: "2024-03-02"}, {BEDate: "2023-12-30"}, {BEDate: "2024-03-20"}, {},
	}

	assert.Equal(t, []domain.KeyValue{{Key: "2023-12", Value: 1}, {Key: "2024-03", Value: 2}}, ImportTimeline(records))
}

func TestImportSummary(t *testing.T) {
	records := []domain.ShipmentRecord{
		{Port: "JNPT", InvoiceTitle: "Palm Oil", ImporterName: "Cipla Ltd"},
		{PortCode: "INNSA1", InvoiceTitle: "Palm Oil", IECBR: "99"},
		{Port: "JNPT"},
	}

	s := ImportSummary(records)

	assert.Equal(t, domain.ImportSummary{TotalRecords: 3, UniquePorts: 2, UniqueProducts: 1, UniqueImporters: 2}, s)
}

func TestBuildImportDashboard_BEType(t *testing.T) {
	records := []domain.ShipmentRecord{{BEType: "Warehouse"}, {BEType: "Warehouse"}, {BEType: "Ex-Bond"}, {}}

	d := BuildImportDashboard(records)

	assert.Equal(t, []domain.KeyValue{{Key: "Warehouse", Value: 2}, {Key: "Ex-Bond", Value: 1}, {Key: "Unknown", Value: 1}}, d.ByBEType)
}
