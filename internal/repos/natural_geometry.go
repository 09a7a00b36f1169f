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

type NaturalGeometryRepo interface {
	// Upsert keeps exactly one geometry row per (feature, lod).
	Upsert(ctx context.Context, tx *gorm.DB, featureID uuid.UUID, lod types.LOD, geometry datatypes.JSON) error
	CountByFeature(ctx context.Context, tx *gorm.DB, featureID uuid.UUID) (int64, error)
}

type naturalGeometryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNaturalGeometryRepo(db *gorm.DB, baseLog *logger.Logger) NaturalGeometryRepo {
	return &naturalGeometryRepo{
		db:  db,
		log: baseLog.With("repo", "NaturalGeometryRepo"),
	}
}

func (r *naturalGeometryRepo) Upsert(ctx context.Context, tx *gorm.DB, featureID uuid.UUID, lod types.LOD, geometry datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if featureID == uuid.Nil {
		return fmt.Errorf("feature id required")
	}
	row := &types.NaturalGeometry{
		FeatureID: featureID,
		LOD:       lod,
		Geometry:  geometry,
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "feature_id"}, {Name: "lod"}},
			DoUpdates: clause.AssignmentColumns([]string{"geometry", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert natural geometry feature %s lod %s: %w", featureID, lod, err)
	}
	return nil
}

func (r *naturalGeometryRepo) CountByFeature(ctx context.Context, tx *gorm.DB, featureID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.NaturalGeometry{}).
		Where("feature_id = ?", featureID).
		Count(&count).Error
	return count, err
}
