package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/types"
)

// NaturalLayerRow is one joined (feature, geometry) result for a type/LOD
// layer query.
type NaturalLayerRow struct {
	Slug     string
	Type     string
	Name     string
	Props    datatypes.JSON
	Geometry datatypes.JSON
}

type NaturalFeatureRepo interface {
	// Upsert keys on slug. The returned bool reports whether the row was
	// created rather than refreshed, for import reporting.
	Upsert(ctx context.Context, tx *gorm.DB, slug string, featureType types.NaturalFeatureType, name string, props datatypes.JSON) (*types.NaturalFeature, bool, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.NaturalFeature, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.NaturalFeature, error)
	ListByTypeWithGeometry(ctx context.Context, tx *gorm.DB, featureType types.NaturalFeatureType, lod types.LOD, limit int) ([]NaturalLayerRow, error)
}

type naturalFeatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNaturalFeatureRepo(db *gorm.DB, baseLog *logger.Logger) NaturalFeatureRepo {
	return &naturalFeatureRepo{
		db:  db,
		log: baseLog.With("repo", "NaturalFeatureRepo"),
	}
}

func (r *naturalFeatureRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.NaturalFeature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var row types.NaturalFeature
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
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

func (r *naturalFeatureRepo) Upsert(ctx context.Context, tx *gorm.DB, slug string, featureType types.NaturalFeatureType, name string, props datatypes.JSON) (*types.NaturalFeature, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if slug == "" {
		return nil, false, fmt.Errorf("slug required")
	}

	existing, err := r.GetBySlug(ctx, tx, slug)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		row := &types.NaturalFeature{
			Slug:  slug,
			Type:  featureType,
			Name:  name,
			Props: props,
		}
		err := transaction.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).
			Create(row).Error
		if err != nil {
			return nil, false, fmt.Errorf("create natural feature %q: %w", slug, err)
		}
		created, err := r.GetBySlug(ctx, tx, slug)
		if err != nil {
			return nil, false, err
		}
		if created == nil {
			return nil, false, fmt.Errorf("natural feature %q missing after upsert", slug)
		}
		return created, true, nil
	}

	existing.Name = name
	existing.Props = props
	existing.UpdatedAt = time.Now().UTC()
	err = transaction.WithContext(ctx).
		Model(&types.NaturalFeature{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"name":       existing.Name,
			"props":      existing.Props,
			"updated_at": existing.UpdatedAt,
		}).Error
	if err != nil {
		return nil, false, fmt.Errorf("refresh natural feature %q: %w", slug, err)
	}
	return existing, false, nil
}

func (r *naturalFeatureRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.NaturalFeature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	rows := make([]*types.NaturalFeature, 0)
	err := transaction.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search natural features %q: %w", query, err)
	}
	return rows, nil
}

func (r *naturalFeatureRepo) ListByTypeWithGeometry(ctx context.Context, tx *gorm.DB, featureType types.NaturalFeatureType, lod types.LOD, limit int) ([]NaturalLayerRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	rows := make([]NaturalLayerRow, 0)
	err := transaction.WithContext(ctx).
		Table("natural_feature AS f").
		Select("f.slug, f.type, f.name, f.props, g.geometry").
		Joins("JOIN natural_geometry g ON g.feature_id = f.id AND g.lod = ?", lod).
		Where("f.type = ?", featureType).
		Order("f.slug").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list natural features type %s lod %s: %w", featureType, lod, err)
	}
	return rows, nil
}
