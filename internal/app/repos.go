package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type Repos struct {
	Criteria   repos.CriteriaRepo
	Score      repos.ScoreRepo
	Idea       repos.IdeaRepo
	Comparison repos.IdeaComparisonRepo
	Activity   repos.ActivityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Criteria:   repos.NewCriteriaRepo(db, log),
		Score:      repos.NewScoreRepo(db, log),
		Idea:       repos.NewIdeaRepo(db, log),
		Comparison: repos.NewIdeaComparisonRepo(db, log),
		Activity:   repos.NewActivityRepo(db, log),
	}
}
