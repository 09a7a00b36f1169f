package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NaturalFeature is a named natural object (river, mountain range, peak).
// Slug is the deterministic identity: type + normalized name + rounded
// centroid, so LOD variants of the same physical feature collapse onto one
// row while distinct unnamed features stay apart.
type NaturalFeature struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string             `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Type      NaturalFeatureType `gorm:"column:type;not null;index" json:"type"`
	Name      string             `gorm:"column:name;index" json:"name"`
	Props     datatypes.JSON     `gorm:"column:props;type:jsonb" json:"props"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null" json:"updated_at"`
}

func (NaturalFeature) TableName() string { return "natural_feature" }

func (f *NaturalFeature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
