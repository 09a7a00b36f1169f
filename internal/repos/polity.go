package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/types"
)

type PolityRepo interface {
	// Upsert creates the polity on first encounter of the canonical key and
	// applies the fill-in-only merge on every later encounter. Creation is
	// atomic per key, so concurrent imports merging into the same key cannot
	// race duplicate rows into existence.
	Upsert(ctx context.Context, tx *gorm.DB, canonicalKey, displayName, colorHex string) (*types.Polity, error)
	GetByCanonicalKey(ctx context.Context, tx *gorm.DB, canonicalKey string) (*types.Polity, error)
}

type polityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPolityRepo(db *gorm.DB, baseLog *logger.Logger) PolityRepo {
	return &polityRepo{
		db:  db,
		log: baseLog.With("repo", "PolityRepo"),
	}
}

func (r *polityRepo) GetByCanonicalKey(ctx context.Context, tx *gorm.DB, canonicalKey string) (*types.Polity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if canonicalKey == "" {
		return nil, nil
	}
	var row types.Polity
	err := transaction.WithContext(ctx).
		Where("canonical_key = ?", canonicalKey).
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

func (r *polityRepo) Upsert(ctx context.Context, tx *gorm.DB, canonicalKey, displayName, colorHex string) (*types.Polity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if canonicalKey == "" {
		return nil, fmt.Errorf("canonical key required")
	}

	row := &types.Polity{CanonicalKey: canonicalKey}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "canonical_key"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, fmt.Errorf("create polity %q: %w", canonicalKey, err)
	}

	existing, err := r.GetByCanonicalKey(ctx, tx, canonicalKey)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("polity %q missing after upsert", canonicalKey)
	}

	if types.MergePolityFields(existing, displayName, colorHex) {
		existing.UpdatedAt = time.Now().UTC()
		err := transaction.WithContext(ctx).
			Model(&types.Polity{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"display_name": existing.DisplayName,
				"color_hex":    existing.ColorHex,
				"updated_at":   existing.UpdatedAt,
			}).Error
		if err != nil {
			return nil, fmt.Errorf("merge polity %q: %w", canonicalKey, err)
		}
	}
	return existing, nil
}
