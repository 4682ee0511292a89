package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

// excelEpochOffset is the serial number of 1970-01-01 in Excel's 1900 date system.
const excelEpochOffset = 25569

// toFloat coerces a raw cell to a finite number. Anything unparsable is 0.
func toFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	default:
		return toFloat(v) != 0
	}
}

// toDate returns an ISO date (YYYY-MM-DD or at least YYYY-MM) for a raw cell.
// Numbers are read as Excel serial dates.
func toDate(v any) string {
	switch d := v.(type) {
	case float64, int, int64:
		serial := toFloat(d)
		if serial <= 0 {
			return ""
		}
		return ExcelSerialToDate(serial).Format("2006-01-02")
	case time.Time:
		return d.Format("2006-01-02")
	}

	s := toString(v)
	if s == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		return ExcelSerialToDate(serial).Format("2006-01-02")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// ExcelSerialToDate converts an Excel 1900-system serial to a UTC date.
func ExcelSerialToDate(serial float64) time.Time {
	days := math.Floor(serial - excelEpochOffset)
	return time.Unix(int64(days)*86400, 0).UTC()
}

// lookup returns the first present, non-empty value among keys.
func lookup(raw domain.RawRecord, keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}
