package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Polity is a canonical historical political entity. Rows are created on the
// first import that produces a new canonical key and merged into forever
// after; they are never deleted.
type Polity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CanonicalKey string    `gorm:"column:canonical_key;uniqueIndex;not null" json:"canonical_key"`
	DisplayName  string    `gorm:"column:display_name" json:"display_name"`
	ColorHex     string    `gorm:"column:color_hex" json:"color_hex"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Polity) TableName() string { return "polity" }

func (p *Polity) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MergePolityFields applies the fill-in-only merge policy: the first non-empty
// display name and color win, a later import never regresses a stored value to
// blank and never replaces a stored color with a computed one. Returns true if
// the row changed.
func MergePolityFields(p *Polity, displayName, colorHex string) bool {
	changed := false
	if p.DisplayName == "" && displayName != "" {
		p.DisplayName = displayName
		changed = true
	}
	if p.ColorHex == "" && colorHex != "" {
		p.ColorHex = colorHex
		changed = true
	}
	return changed
}
