package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/types"
)

// HistoryLayerRow is one joined (area, geometry, polity) result for a
// year/LOD layer query.
type HistoryLayerRow struct {
	Name            string
	CanonicalName   string
	BorderPrecision *string
	Geometry        datatypes.JSON
	CanonicalKey    string
	DisplayName     string
	ColorHex        string
}

type HistoricalAreaRepo interface {
	// Upsert keys on (year, name): re-importing a source year updates
	// linkage and props in place instead of duplicating rows.
	Upsert(ctx context.Context, tx *gorm.DB, area *types.HistoricalArea) (*types.HistoricalArea, error)
	GetByYearName(ctx context.Context, tx *gorm.DB, year int, name string) (*types.HistoricalArea, error)
	CountByYear(ctx context.Context, tx *gorm.DB, year int) (int64, error)
	ListYearWithGeometry(ctx context.Context, tx *gorm.DB, year int, lod types.LOD, limit int) ([]HistoryLayerRow, error)
}

type historicalAreaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoricalAreaRepo(db *gorm.DB, baseLog *logger.Logger) HistoricalAreaRepo {
	return &historicalAreaRepo{
		db:  db,
		log: baseLog.With("repo", "HistoricalAreaRepo"),
	}
}

func (r *historicalAreaRepo) Upsert(ctx context.Context, tx *gorm.DB, area *types.HistoricalArea) (*types.HistoricalArea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if area == nil || area.Name == "" {
		return nil, fmt.Errorf("area with a name required")
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "year"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"canonical_name", "border_precision", "props", "polity_id", "updated_at",
			}),
		}).
		Create(area).Error
	if err != nil {
		return nil, fmt.Errorf("upsert area %q year %d: %w", area.Name, area.Year, err)
	}
	return r.GetByYearName(ctx, tx, area.Year, area.Name)
}

func (r *historicalAreaRepo) GetByYearName(ctx context.Context, tx *gorm.DB, year int, name string) (*types.HistoricalArea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.HistoricalArea
	err := transaction.WithContext(ctx).
		Where("year = ? AND name = ?", year, name).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *historicalAreaRepo) CountByYear(ctx context.Context, tx *gorm.DB, year int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.HistoricalArea{}).
		Where("year = ?", year).
		Count(&count).Error
	return count, err
}

func (r *historicalAreaRepo) ListYearWithGeometry(ctx context.Context, tx *gorm.DB, year int, lod types.LOD, limit int) ([]HistoryLayerRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	rows := make([]HistoryLayerRow, 0)
	err := transaction.WithContext(ctx).
		Table("historical_area AS a").
		Select("a.name, a.canonical_name, a.border_precision, g.geometry, p.canonical_key, p.display_name, p.color_hex").
		Joins("JOIN historical_area_geometry g ON g.area_id = a.id AND g.lod = ?", lod).
		Joins("JOIN polity p ON p.id = a.polity_id").
		Where("a.year = ?", year).
		Order("a.name").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list areas year %d lod %s: %w", year, lod, err)
	}
	return rows, nil
}
