package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoricalAreaGeometry holds the geometry payload for one area at one level
// of detail. Unique on (area_id, lod); re-import overwrites, never duplicates.
type HistoricalAreaGeometry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AreaID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_area_geom_lod,priority:1" json:"area_id"`
	Area        *HistoricalArea `gorm:"constraint:OnDelete:CASCADE;foreignKey:AreaID;references:ID" json:"area,omitempty"`
	LOD         LOD             `gorm:"column:lod;not null;uniqueIndex:idx_area_geom_lod,priority:2" json:"lod"`
	Geometry    datatypes.JSON  `gorm:"column:geometry;type:jsonb;not null" json:"geometry"`
	SourceLabel string          `gorm:"column:source_label" json:"source_label"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (HistoricalAreaGeometry) TableName() string { return "historical_area_geometry" }

func (g *HistoricalAreaGeometry) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
