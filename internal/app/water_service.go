package app

import (
	"context"
	"regexp"
	"strconv"

	"github.com/371bohdan/Record-Play/internal/domain"
)

// Coordinates must carry an explicit fractional part; a bare integer
// token is rejected.
var decimalRe = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)

// WaterService validates and stores water-quality measurement records.
type WaterService struct {
	repo domain.RecordRepository
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(repo domain.RecordRepository) *WaterService {
	return &WaterService{repo: repo}
}

// RecordInput is the raw measurement form.
type RecordInput struct {
	NamePlace     string
	CoordinateX   string
	CoordinateY   string
	Year          string
	Season        string
	ChemicalIndex string
	Result        string
	Comment       string
}

func (in RecordInput) validate() (float64, error) {
	if in.NamePlace == "" || in.CoordinateX == "" || in.CoordinateY == "" ||
		in.Year == "" || in.Season == "" || in.ChemicalIndex == "" || in.Result == "" {
		return 0, failValidation("Please fill in all fields!")
	}
	if !decimalRe.MatchString(in.CoordinateX) {
		return 0, failValidation("Incorrect enter coordinateX")
	}
	if !decimalRe.MatchString(in.CoordinateY) {
		return 0, failValidation("Incorrect enter coordinateY")
	}
	result, err := strconv.ParseFloat(in.Result, 64)
	if err != nil {
		return 0, failValidation("Incorrect enter result")
	}
	return result, nil
}

// Create validates the form and stores a new record.
func (s *WaterService) Create(ctx context.Context, in RecordInput) (int64, error) {
	result, err := in.validate()
	if err != nil {
		return 0, err
	}
	rec := &domain.WaterRecord{
		NamePlace:     in.NamePlace,
		CoordinateX:   in.CoordinateX,
		CoordinateY:   in.CoordinateY,
		Year:          in.Year,
		Season:        in.Season,
		ChemicalIndex: in.ChemicalIndex,
		Result:        result,
		Comment:       in.Comment,
	}
	return s.repo.AddRecord(ctx, rec)
}

// Update validates the form and rewrites the record with the given id.
func (s *WaterService) Update(ctx context.Context, id int64, in RecordInput) error {
	result, err := in.validate()
	if err != nil {
		return err
	}
	rec := &domain.WaterRecord{
		ID:            id,
		NamePlace:     in.NamePlace,
		CoordinateX:   in.CoordinateX,
		CoordinateY:   in.CoordinateY,
		Year:          in.Year,
		Season:        in.Season,
		ChemicalIndex: in.ChemicalIndex,
		Result:        result,
		Comment:       in.Comment,
	}
	return s.repo.UpdateRecord(ctx, rec)
}

// Get returns a single record by id.
func (s *WaterService) Get(ctx context.Context, id int64) (*domain.WaterRecord, error) {
	return s.repo.GetRecord(ctx, id)
}

// ListRecent returns the most recent records up to limit.
func (s *WaterService) ListRecent(ctx context.Context, limit int) ([]domain.WaterRecord, error) {
	return s.repo.ListRecentRecords(ctx, limit)
}
