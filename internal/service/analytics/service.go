package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/observability/telemetry"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
	"github.com/seu-repo/tradeinsight/internal/service/simulation"
	"github.com/seu-repo/tradeinsight/internal/service/sustainability"
)

const (
	kindDashboard      = "dashboard"
	kindImport         = "import"
	kindSustainability = "sustainability"
)

var cachedKinds = []string{kindDashboard, kindImport, kindSustainability}

// Service loads a dataset's rows, normalizes them and runs the pure
// aggregations, caching results per user and dataset.
type Service struct {
	datasets ports.DatasetService
	cache    ports.Cache
	ttl      time.Duration
	log      *zap.Logger
}

func NewService(datasets ports.DatasetService, cache ports.Cache, ttl time.Duration, log *zap.Logger) ports.AnalyticsService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		datasets: datasets,
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

func cacheKey(userID, datasetID, kind string) string {
	return fmt.Sprintf("analytics:%s:%s:%s", userID, datasetID, kind)
}

func (s *Service) records(ctx context.Context, userID, datasetID string) ([]domain.ShipmentRecord, error) {
	rows, err := s.datasets.Rows(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}
	return ingest.NormalizeAll(rows), nil
}

// cached returns the cached value for kind or computes and stores it.
func cached[T any](ctx context.Context, s *Service, userID, datasetID, kind string, compute func([]domain.ShipmentRecord) T) (*T, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "analytics."+kind)
	defer span.End()

	key := cacheKey(userID, datasetID, kind)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var out T
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				telemetry.AnalyticsRunsTotal.WithLabelValues(kind, "hit").Inc()
				return &out, nil
			}
			s.log.Warn("Discarding unreadable cache entry", zap.String("key", key))
		}
	}

	records, err := s.records(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}
	out := compute(records)
	telemetry.AnalyticsRunsTotal.WithLabelValues(kind, "miss").Inc()

	if s.cache != nil {
		data, err := json.Marshal(out)
		if err == nil {
			err = s.cache.Set(ctx, key, string(data), s.ttl)
		}
		if err != nil {
			s.log.Warn("Failed to cache analytics result", zap.String("key", key), zap.Error(err))
		}
	}
	return &out, nil
}

func (s *Service) Dashboard(ctx context.Context, userID, datasetID string) (*domain.Dashboard, error) {
	return cached(ctx, s, userID, datasetID, kindDashboard, BuildDashboard)
}

func (s *Service) ImportDashboard(ctx context.Context, userID, datasetID string) (*domain.ImportDashboard, error) {
	return cached(ctx, s, userID, datasetID, kindImport, BuildImportDashboard)
}

func (s *Service) Sustainability(ctx context.Context, userID, datasetID string) (*domain.SustainabilityMetrics, error) {
	return cached(ctx, s, userID, datasetID, kindSustainability, sustainability.Estimate)
}

// Simulate is not cached; every parameter set is a fresh run.
func (s *Service) Simulate(ctx context.Context, userID, datasetID string, params domain.SimulationParams) (*domain.SimulationResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "analytics.simulate")
	defer span.End()

	records, err := s.records(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}
	telemetry.AnalyticsRunsTotal.WithLabelValues("simulate", "none").Inc()

	res := simulation.Simulate(records, params)
	s.log.Debug("Simulation completed",
		zap.String("dataset_id", datasetID),
		zap.Float64("profit_change", res.ProfitChange),
	)
	return &res, nil
}

// Invalidate drops every cached result of a dataset for a user.
func (s *Service) Invalidate(ctx context.Context, userID, datasetID string) error {
	if s.cache == nil {
		return nil
	}
	for _, kind := range cachedKinds {
		if err := s.cache.Delete(ctx, cacheKey(userID, datasetID, kind)); err != nil {
			return fmt.Errorf("failed to invalidate %s cache: %w", kind, err)
		}
	}
	return nil
}
