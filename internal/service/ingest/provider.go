package ingest

import (
	"bytes"
	_ "embed"
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

//go:embed default_shipments.csv
var defaultShipmentsCSV []byte

// DefaultProvider serves the embedded sample dataset, parsed on first use.
type DefaultProvider struct {
	once    sync.Once
	raw     []domain.RawRecord
	records []domain.ShipmentRecord
	log     *zap.Logger
}

func NewDefaultProvider(log *zap.Logger) *DefaultProvider {
	return &DefaultProvider{log: log}
}

func (p *DefaultProvider) load() {
	p.once.Do(func() {
		raw, err := ParseCSV(bytes.NewReader(defaultShipmentsCSV))
		if err != nil {
			p.log.Error("Failed to parse embedded dataset", zap.Error(err))
			return
		}
		p.raw = raw
		p.records = NormalizeAll(raw)
		p.log.Debug("Embedded dataset loaded", zap.Int("records", len(p.records)))
	})
}

// Raw returns copies of the embedded rows.
func (p *DefaultProvider) Raw() []domain.RawRecord {
	p.load()
	out := make([]domain.RawRecord, len(p.raw))
	for i, r := range p.raw {
		cp := make(domain.RawRecord, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Records returns a copy of the normalized embedded rows.
func (p *DefaultProvider) Records() []domain.ShipmentRecord {
	p.load()
	return append([]domain.ShipmentRecord(nil), p.records...)
}

// UniqueProducts lists distinct products in ascending order.
func UniqueProducts(records []domain.ShipmentRecord) []string {
	return sortedUnique(lo.Map(records, func(r domain.ShipmentRecord, _ int) string { return r.Product }))
}

// UniqueCurrencies lists distinct currencies in ascending order.
func UniqueCurrencies(records []domain.ShipmentRecord) []string {
	return sortedUnique(lo.Map(records, func(r domain.ShipmentRecord, _ int) string { return r.Currency }))
}

func sortedUnique(values []string) []string {
	out := lo.Uniq(values)
	sort.Strings(out)
	return out
}
