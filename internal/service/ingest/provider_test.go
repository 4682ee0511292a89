package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultProvider_Records(t *testing.T) {
	p := NewDefaultProvider(zap.NewNop())

	records := p.Records()

	require.Len(t, records, 31)
	first := records[0]
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, "SHP1000", first.ShipmentID)
	assert.Equal(t, "Machinery", first.Product)
	assert.Equal(t, 271.0, first.Quantity)
	assert.InDelta(t, 59.09, first.PricePerUnit, 1e-9)
	assert.False(t, first.Anomaly)
	assert.True(t, records[1].Anomaly)
}

func TestDefaultProvider_ReturnsCopies(t *testing.T) {
	p := NewDefaultProvider(zap.NewNop())

	records := p.Records()
	records[0].Product = "Changed"
	raw := p.Raw()
	raw[0]["Product"] = "Changed"

	assert.Equal(t, "Machinery", p.Records()[0].Product)
	assert.Equal(t, "Machinery", p.Raw()[0]["Product"])
}

func TestUniqueProductsAndCurrencies(t *testing.T) {
	records := NewDefaultProvider(zap.NewNop()).Records()

	assert.Equal(t, []string{"Chemicals", "Electronics", "Food", "Machinery", "Textiles"}, UniqueProducts(records))
	assert.Equal(t, []string{"EUR", "GBP", "INR", "USD"}, UniqueCurrencies(records))
}
