package app

import (
	"gorm.io/gorm"

	"github.com/okarev/chronomap-backend/internal/logger"
	"github.com/okarev/chronomap-backend/internal/repos"
)

type Repos struct {
	Polity                 repos.PolityRepo
	HistoricalArea         repos.HistoricalAreaRepo
	HistoricalAreaGeometry repos.HistoricalAreaGeometryRepo
	NaturalFeature         repos.NaturalFeatureRepo
	NaturalGeometry        repos.NaturalGeometryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Polity:                 repos.NewPolityRepo(db, log),
		HistoricalArea:         repos.NewHistoricalAreaRepo(db, log),
		HistoricalAreaGeometry: repos.NewHistoricalAreaGeometryRepo(db, log),
		NaturalFeature:         repos.NewNaturalFeatureRepo(db, log),
		NaturalGeometry:        repos.NewNaturalGeometryRepo(db, log),
	}
}
