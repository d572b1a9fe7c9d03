package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"
)

const recordColumns = "id, name_place, coordinate_x, coordinate_y, year, season, chemical_index, result, comment, created_at"

// AddRecord inserts a new water-quality record.
func (d *DB) AddRecord(ctx context.Context, rec *domain.WaterRecord) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO water_records(name_place, coordinate_x, coordinate_y, year, season, chemical_index, result, comment, created_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;",
		rec.NamePlace, rec.CoordinateX, rec.CoordinateY, rec.Year, rec.Season, rec.ChemicalIndex, rec.Result, rec.Comment, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// GetRecord retrieves a record by ID.
func (d *DB) GetRecord(ctx context.Context, id int64) (*domain.WaterRecord, error) {
	var rec domain.WaterRecord
	err := d.sql.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM water_records WHERE id = $1", id,
	).Scan(&rec.ID, &rec.NamePlace, &rec.CoordinateX, &rec.CoordinateY, &rec.Year,
		&rec.Season, &rec.ChemicalIndex, &rec.Result, &rec.Comment, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecord rewrites the record with rec.ID.
func (d *DB) UpdateRecord(ctx context.Context, rec *domain.WaterRecord) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE water_records SET name_place=$1, coordinate_x=$2, coordinate_y=$3, year=$4, season=$5, chemical_index=$6, result=$7, comment=$8 WHERE id=$9;",
		rec.NamePlace, rec.CoordinateX, rec.CoordinateY, rec.Year, rec.Season, rec.ChemicalIndex, rec.Result, rec.Comment, rec.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRecentRecords returns the most recent records up to limit.
func (d *DB) ListRecentRecords(ctx context.Context, limit int) ([]domain.WaterRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM water_records ORDER BY created_at DESC LIMIT $1;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WaterRecord, 0, limit)
	for rows.Next() {
		var rec domain.WaterRecord
		if err := rows.Scan(&rec.ID, &rec.NamePlace, &rec.CoordinateX, &rec.CoordinateY, &rec.Year,
			&rec.Season, &rec.ChemicalIndex, &rec.Result, &rec.Comment, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteRecordsByPlace removes every record for the given place name. Used by
// administrative cleanup.
func (d *DB) DeleteRecordsByPlace(ctx context.Context, namePlace string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM water_records WHERE name_place=$1;", namePlace)
	return err
}
