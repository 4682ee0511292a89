package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MaxRecordsPerDataset = 500
	MaxDatasetsPerUser   = 5
)

type Dataset struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"index"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	RecordCount int             `json:"record_count" gorm:"-"`
	Records     []DatasetRecord `json:"records,omitempty" gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DatasetRecord is a stored row. RawData keeps the uploaded row untouched so
// the analytics can re-normalize it with every known field.
type DatasetRecord struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	DatasetID       string         `json:"dataset_id" gorm:"index"`
	Position        int            `json:"position"` // upload order within the dataset
	Date            string         `json:"date"`
	ShipmentID      string         `json:"shipment_id"`
	Product         string         `json:"product"`
	Quantity        float64        `json:"quantity"`
	PricePerUnit    float64        `json:"price_per_unit"`
	Currency        string         `json:"currency"`
	TotalValue      float64        `json:"total_value"`
	Port            string         `json:"port"`
	CountryOfOrigin string         `json:"country_of_origin"`
	ImporterName    string         `json:"importer_name"`
	ExporterName    string         `json:"exporter_name"`
	HSCode          string         `json:"hs_code"`
	RawData         datatypes.JSON `json:"raw_data" gorm:"type:jsonb"`
}

// DatasetEventType names the queue subject a dataset event is published on.
type DatasetEventType string

const (
	DatasetCreated DatasetEventType = "dataset.created"
	DatasetDeleted DatasetEventType = "dataset.deleted"
)

type DatasetEvent struct {
	Type        DatasetEventType `json:"type"`
	DatasetID   string           `json:"dataset_id"`
	UserID      string           `json:"user_id"`
	Name        string           `json:"name,omitempty"`
	RecordCount int              `json:"record_count,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// DefaultDatasetID addresses the embedded sample dataset wherever a dataset id is accepted.
const DefaultDatasetID = "default"
