package ingest

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

const DefaultGeneratedCount = 100

var (
	generatorPorts = []string{"JNPT", "Mundra", "Chennai", "Kolkata", "Visakhapatnam", "Cochin", "Mumbai Air", "Delhi Air"}
	portCodes      = map[string]string{
		"JNPT": "INNSA1", "Mundra": "INMUN1", "Chennai": "INMAA1", "Kolkata": "INCCU1",
		"Visakhapatnam": "INVTZ1", "Cochin": "INCOK1", "Mumbai Air": "INBOM4", "Delhi Air": "INDEL4",
	}
	generatorProducts = []string{
		"Polyethylene Terephthalate", "PVC Resin", "Carbon Black", "Solar Modules", "Lithium Ion Batteries",
		"Steel Coils", "Aluminum Scrap", "Raw Cotton", "Palm Oil", "Integrated Circuits",
		"Parts of Mobile Phones", "Laptop Computers", "Medical Devices", "Pharmaceutical Ingredients",
	}
	generatorImporters = []string{
		"Reliance Industries Ltd", "Tata Motors Ltd", "Adani Enterprises", "Vedanta Ltd", "JSW Steel",
		"Samsung India Electronics", "LG Electronics", "Xiaomi Technology", "Sun Pharma", "Cipla Ltd",
	}
	generatorCHAs = []string{
		"DHL Logistics", "FedEx Express", "Jeena & Company", "Robinsons Cargo", "Total Transport Systems",
		"Blue Dart Express", "Schenker India", "Kuehne + Nagel",
	}
	generatorBETypes   = []string{"Home Consumption", "Warehouse", "Ex-Bond"}
	generatorCountries = []string{"China", "USA", "UAE", "Saudi Arabia", "Germany", "South Korea", "Japan", "Indonesia"}
)

// Generator produces synthetic Bill of Entry rows.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator. The same seed yields the same rows for a fixed clock.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the reference time for generated dates.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate returns n rows; n <= 0 means DefaultGeneratedCount.
func (g *Generator) Generate(n int) []domain.RawRecord {
	if n <= 0 {
		n = DefaultGeneratedCount
	}

	rows := make([]domain.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		port := pick(g.rng, generatorPorts)
		product := pick(g.rng, generatorProducts)
		value := float64(g.rng.Intn(10_000_000) + 500_000)
		date := g.now().AddDate(0, 0, -g.rng.Intn(365)).UTC().Format("2006-01-02")

		rows = append(rows, domain.RawRecord{
			"port":              port,
			"port_code":         portCodes[port],
			"be_no":             float64(g.rng.Intn(9_000_000) + 1_000_000),
			"be_date":           date,
			"be_type":           pick(g.rng, generatorBETypes),
			"invoice_title":     product,
			"importer_name":     pick(g.rng, generatorImporters),
			"iec_br":            float64(g.rng.Int63n(9_000_000_000) + 1_000_000_000),
			"address":           fmt.Sprintf("Plot No %d, Industrial Area, %s", g.rng.Intn(100), port),
			"country_of_origin": pick(g.rng, generatorCountries),
			"cha_name":          pick(g.rng, generatorCHAs),
			"assessable_value":  value,
			"duty_amount":       float64(int64(value * (0.1 + g.rng.Float64()*0.2))),
			"Product":           product,
			"Currency":          "INR",
			"Total_Value":       value,
			"Date":              date,
		})
	}
	return rows
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
