package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoricalArea is one polygon/multipolygon observed in one source year.
// The (year, name) pair is the re-import identity: importing the same source
// year again updates linkage and props in place instead of duplicating rows.
type HistoricalArea struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Year            int            `gorm:"column:year;not null;index;uniqueIndex:idx_area_year_name,priority:1" json:"year"`
	Name            string         `gorm:"column:name;not null;uniqueIndex:idx_area_year_name,priority:2" json:"name"`
	CanonicalName   string         `gorm:"column:canonical_name;index" json:"canonical_name"`
	BorderPrecision *string        `gorm:"column:border_precision" json:"border_precision,omitempty"`
	Props           datatypes.JSON `gorm:"column:props;type:jsonb" json:"props"`
	PolityID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"polity_id"`
	Polity          *Polity        `gorm:"constraint:OnDelete:RESTRICT;foreignKey:PolityID;references:ID" json:"polity,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (HistoricalArea) TableName() string { return "historical_area" }

func (a *HistoricalArea) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
