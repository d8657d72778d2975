package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/http/handlers"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Idea       *handlers.IdeaHandler
	Criteria   *handlers.CriteriaHandler
	Score      *handlers.ScoreHandler
	Scoring    *handlers.ScoringHandler
	Comparison *handlers.ComparisonHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(db),
		Idea:       handlers.NewIdeaHandler(log, s.Idea, s.Activity),
		Criteria:   handlers.NewCriteriaHandler(log, s.Criteria),
		Score:      handlers.NewScoreHandler(log, s.Score),
		Scoring:    handlers.NewScoringHandler(log, s.Scoring),
		Comparison: handlers.NewComparisonHandler(log, s.Comparison),
	}
}
