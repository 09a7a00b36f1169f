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

type HistoricalAreaGeometryRepo interface {
	// Upsert keeps exactly one geometry row per (area, lod); re-import
	// overwrites the payload and source label.
	Upsert(ctx context.Context, tx *gorm.DB, areaID uuid.UUID, lod types.LOD, geometry datatypes.JSON, sourceLabel string) error
	GetByAreaLOD(ctx context.Context, tx *gorm.DB, areaID uuid.UUID, lod types.LOD) (*types.HistoricalAreaGeometry, error)
}

type historicalAreaGeometryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoricalAreaGeometryRepo(db *gorm.DB, baseLog *logger.Logger) HistoricalAreaGeometryRepo {
	return &historicalAreaGeometryRepo{
		db:  db,
		log: baseLog.With("repo", "HistoricalAreaGeometryRepo"),
	}
}

func (r *historicalAreaGeometryRepo) Upsert(ctx context.Context, tx *gorm.DB, areaID uuid.UUID, lod types.LOD, geometry datatypes.JSON, sourceLabel string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if areaID == uuid.Nil {
		return fmt.Errorf("area id required")
	}
	row := &types.HistoricalAreaGeometry{
		AreaID:      areaID,
		LOD:         lod,
		Geometry:    geometry,
		SourceLabel: sourceLabel,
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "area_id"}, {Name: "lod"}},
			DoUpdates: clause.AssignmentColumns([]string{"geometry", "source_label", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert geometry area %s lod %s: %w", areaID, lod, err)
	}
	return nil
}

func (r *historicalAreaGeometryRepo) GetByAreaLOD(ctx context.Context, tx *gorm.DB, areaID uuid.UUID, lod types.LOD) (*types.HistoricalAreaGeometry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.HistoricalAreaGeometry
	err := transaction.WithContext(ctx).
		Where("area_id = ? AND lod = ?", areaID, lod).
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
