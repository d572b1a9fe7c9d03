package domain

import (
	"context"
	"time"
)

// WaterRecord is a single water-quality measurement.
type WaterRecord struct {
	ID            int64     `json:"id"`
	NamePlace     string    `json:"namePlace"`
	CoordinateX   string    `json:"coordinateX"`
	CoordinateY   string    `json:"coordinateY"`
	Year          string    `json:"year"`
	Season        string    `json:"season"`
	ChemicalIndex string    `json:"chemicalIndex"`
	Result        float64   `json:"result"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecordRepository is the port for measurement persistence.
type RecordRepository interface {
	AddRecord(ctx context.Context, rec *WaterRecord) (int64, error)
	GetRecord(ctx context.Context, id int64) (*WaterRecord, error)
	// UpdateRecord rewrites all mutable fields of the record with rec.ID.
	UpdateRecord(ctx context.Context, rec *WaterRecord) error
	ListRecentRecords(ctx context.Context, limit int) ([]WaterRecord, error)
	DeleteRecordsByPlace(ctx context.Context, namePlace string) error
}
