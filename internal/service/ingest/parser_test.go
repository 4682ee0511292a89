package ingest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := "Date,Product,Quantity,Anomaly\n2024-01-01,Food,10,true\n\n2024-01-02,Textiles,,false\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Food", rows[0]["Product"])
	assert.Equal(t, 10.0, rows[0]["Quantity"])
	assert.Equal(t, true, rows[0]["Anomaly"])
	assert.Nil(t, rows[1]["Quantity"])
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Date,Product\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"invoice_title", "assessable_value", "port"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"PVC Resin", 1200000, "JNPT"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Palm Oil", 800000, "Mumbai Air"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Parse("upload.XLSX", bytes.NewReader(buf.Bytes()))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PVC Resin", rows[0]["invoice_title"])
	assert.Equal(t, 1200000.0, rows[0]["assessable_value"])
	assert.Equal(t, "Mumbai Air", rows[1]["port"])
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse("legacy.xls", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseCSV_KeepsIdentifierDigits(t *testing.T) {
	// Arrange
	input := "hs_code,iec_br,be_no,Quantity,Risk_Score\n01012100,0305012345,1234567890123456789,0,0.5\n"

	// Act
	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	rec := Normalize(rows[0])

	// Assert
	assert.Equal(t, "01012100", rows[0]["hs_code"])
	assert.Equal(t, "0305012345", rows[0]["iec_br"])
	assert.Equal(t, "1234567890123456789", rows[0]["be_no"])
	assert.Equal(t, 0.0, rows[0]["Quantity"])
	assert.Equal(t, 0.5, rows[0]["Risk_Score"])
	assert.Equal(t, "01012100", rec.HSCode)
	assert.Equal(t, "0305012345", rec.IECBR)
	assert.Equal(t, "1234567890123456789", rec.ShipmentID)
}

func TestParseXLSX_DateCells(t *testing.T) {
	// Arrange
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Date", "Product", "Quantity"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "Tea", 5}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// Act
	rows, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	recs := NormalizeAll(rows)

	// Assert
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-03-15", recs[0].Date)
	assert.Equal(t, "2024-03", recs[0].Month())
	assert.Equal(t, "03", recs[0].MonthOfYear())
}
