package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
)

// recordBatchSize bounds the rows per INSERT when a dataset is created.
const recordBatchSize = 100

type DatasetRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDatasetRepository(db *gorm.DB, log *zap.Logger) ports.DatasetRepository {
	return &DatasetRepository{
		db:  db,
		log: log,
	}
}

// Create inserts the dataset and its records in one transaction.
func (r *DatasetRepository) Create(ctx context.Context, ds *domain.Dataset) error {
	defer observe(time.Now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records := ds.Records
		if err := tx.Omit("Records").Create(ds).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			records[i].DatasetID = ds.ID
		}
		return tx.CreateInBatches(records, recordBatchSize).Error
	})
	if err != nil {
		r.log.Error("Failed to create dataset", zap.String("dataset_id", ds.ID), zap.Error(err))
		return err
	}
	ds.RecordCount = len(ds.Records)
	return nil
}

func (r *DatasetRepository) FindByID(ctx context.Context, id string) (*domain.Dataset, error) {
	defer observe(time.Now())
	var ds domain.Dataset
	result := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&ds, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	ds.RecordCount = len(ds.Records)
	return &ds, nil
}

type datasetCount struct {
	DatasetID string
	Count     int
}

func (r *DatasetRepository) ListByUser(ctx context.Context, userID string) ([]domain.Dataset, error) {
	defer observe(time.Now())
	var datasets []domain.Dataset
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&datasets).Error; err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return datasets, nil
	}

	ids := make([]string, len(datasets))
	for i, ds := range datasets {
		ids[i] = ds.ID
	}

	var counts []datasetCount
	err := db.Model(&domain.DatasetRecord{}).
		Select("dataset_id, COUNT(*) AS count").
		Where("dataset_id IN ?", ids).
		Group("dataset_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.DatasetID] = c.Count
	}
	for i := range datasets {
		datasets[i].RecordCount = byID[datasets[i].ID]
	}
	return datasets, nil
}

func (r *DatasetRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	defer observe(time.Now())
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Dataset{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Delete removes the dataset and its records.
func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dataset_id = ?", id).Delete(&domain.DatasetRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Dataset{}, "id = ?", id).Error
	})
}
