package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/observability/telemetry"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
)

var (
	ErrInvalidRecordCount = fmt.Errorf("a dataset must hold between 1 and %d records", domain.MaxRecordsPerDataset)
	ErrDatasetLimit       = fmt.Errorf("at most %d datasets per user", domain.MaxDatasetsPerUser)
	ErrDatasetNotFound    = errors.New("dataset not found")
)

type Service struct {
	repo     ports.DatasetRepository
	provider *ingest.DefaultProvider
	mq       ports.MessageQueue
	now      func() time.Time
	log      *zap.Logger
}

func NewService(repo ports.DatasetRepository, provider *ingest.DefaultProvider, mq ports.MessageQueue, log *zap.Logger) ports.DatasetService {
	return &Service{
		repo:     repo,
		provider: provider,
		mq:       mq,
		now:      time.Now,
		log:      log,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Dataset, error) {
	datasets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	if datasets == nil {
		datasets = []domain.Dataset{}
	}
	return datasets, nil
}

func (s *Service) Get(ctx context.Context, userID, datasetID string) (*domain.Dataset, error) {
	ds, err := s.repo.FindByID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	// Someone else's dataset is reported exactly like a missing one.
	if ds == nil || ds.UserID != userID {
		return nil, ErrDatasetNotFound
	}
	ds.RecordCount = len(ds.Records)
	return ds, nil
}

func (s *Service) Create(ctx context.Context, userID string, input ports.CreateDatasetInput) (*domain.Dataset, error) {
	if len(input.Records) == 0 || len(input.Records) > domain.MaxRecordsPerDataset {
		return nil, ErrInvalidRecordCount
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count datasets: %w", err)
	}
	if count >= domain.MaxDatasetsPerUser {
		return nil, ErrDatasetLimit
	}

	now := s.now()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Dataset " + now.Format("2006-01-02")
	}

	ds := &domain.Dataset{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ds.Records = make([]domain.DatasetRecord, 0, len(input.Records))
	for i, raw := range input.Records {
		rec, err := toDatasetRecord(ds.ID, i, raw)
		if err != nil {
			return nil, err
		}
		ds.Records = append(ds.Records, rec)
	}
	ds.RecordCount = len(ds.Records)

	if err := s.repo.Create(ctx, ds); err != nil {
		return nil, fmt.Errorf("failed to save dataset: %w", err)
	}

	telemetry.DatasetsCreatedTotal.Inc()
	telemetry.DatasetRecordsIngested.Observe(float64(ds.RecordCount))
	s.log.Info("Dataset created",
		zap.String("dataset_id", ds.ID),
		zap.String("user_id", userID),
		zap.Int("records", ds.RecordCount),
	)

	s.publish(domain.DatasetEvent{
		Type:        domain.DatasetCreated,
		DatasetID:   ds.ID,
		UserID:      userID,
		Name:        ds.Name,
		RecordCount: ds.RecordCount,
		OccurredAt:  now,
	})
	return ds, nil
}

func (s *Service) Delete(ctx context.Context, userID, datasetID string) error {
	ds, err := s.repo.FindByID(ctx, datasetID)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if ds == nil || ds.UserID != userID {
		return ErrDatasetNotFound
	}

	if err := s.repo.Delete(ctx, datasetID); err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	s.log.Info("Dataset deleted", zap.String("dataset_id", datasetID), zap.String("user_id", userID))

	s.publish(domain.DatasetEvent{
		Type:       domain.DatasetDeleted,
		DatasetID:  datasetID,
		UserID:     userID,
		Name:       ds.Name,
		OccurredAt: s.now(),
	})
	return nil
}

func (s *Service) Rows(ctx context.Context, userID, datasetID string) ([]domain.RawRecord, error) {
	if datasetID == domain.DefaultDatasetID {
		return s.provider.Raw(), nil
	}

	ds, err := s.Get(ctx, userID, datasetID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row := domain.RawRecord{}
		if len(rec.RawData) > 0 {
			if err := json.Unmarshal(rec.RawData, &row); err != nil {
				s.log.Warn("skipping undecodable record",
					zap.String("record_id", rec.ID),
					zap.Error(err),
				)
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// publish is best effort: a failed event never fails the write that caused it.
func (s *Service) publish(event domain.DatasetEvent) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to encode dataset event", zap.Error(err))
		return
	}
	if err := s.mq.Publish(string(event.Type), data); err != nil {
		s.log.Warn("failed to publish dataset event",
			zap.String("subject", string(event.Type)),
			zap.Error(err),
		)
	}
}

func toDatasetRecord(datasetID string, position int, raw domain.RawRecord) (domain.DatasetRecord, error) {
	rec := ingest.Normalize(raw)

	data, err := json.Marshal(raw)
	if err != nil {
		return domain.DatasetRecord{}, fmt.Errorf("failed to encode record: %w", err)
	}

	total := rec.TotalValue
	if total == 0 {
		total = rec.AssessableValue
	}

	return domain.DatasetRecord{
		ID:              uuid.New().String(),
		DatasetID:       datasetID,
		Position:        position,
		Date:            rec.Date,
		ShipmentID:      rec.ShipmentID,
		Product:         rec.Product,
		Quantity:        rec.Quantity,
		PricePerUnit:    rec.PricePerUnit,
		Currency:        rec.Currency,
		TotalValue:      total,
		Port:            rec.Port,
		CountryOfOrigin: rec.CountryOfOrigin,
		ImporterName:    rec.ImporterName,
		ExporterName:    rec.ExporterName,
		HSCode:          rec.HSCode,
		RawData:         datatypes.JSON(data),
	}, nil
}
