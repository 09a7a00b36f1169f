package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NaturalGeometry holds the geometry payload for one natural feature at one
// level of detail. Unique on (feature_id, lod).
type NaturalGeometry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FeatureID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_natural_geom_lod,priority:1" json:"feature_id"`
	Feature   *NaturalFeature `gorm:"constraint:OnDelete:CASCADE;foreignKey:FeatureID;references:ID" json:"feature,omitempty"`
	LOD       LOD             `gorm:"column:lod;not null;uniqueIndex:idx_natural_geom_lod,priority:2" json:"lod"`
	Geometry  datatypes.JSON  `gorm:"column:geometry;type:jsonb;not null" json:"geometry"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (NaturalGeometry) TableName() string { return "natural_geometry" }

func (g *NaturalGeometry) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
