package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type Services struct {
	Activity   services.ActivityService
	Idea       services.IdeaService
	Criteria   services.CriteriaService
	Score      services.ScoreService
	Scoring    services.ScoringService
	Comparison services.ComparisonService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, clients Clients, r Repos) Services {
	log.Info("Wiring services...")

	activity := services.NewActivityService(log, r.Activity)
	scoring := services.NewScoringService(db, log, metrics, services.ScoringConfig{
		Concurrency:  cfg.Ranking.Concurrency,
		DefaultLimit: cfg.Ranking.DefaultLimit,
	}, r.Idea, r.Score, r.Criteria, activity)

	return Services{
		Activity:   activity,
		Idea:       services.NewIdeaService(log, metrics, r.Idea, activity),
		Criteria:   services.NewCriteriaService(db, log, metrics, r.Criteria, r.Score, activity),
		Score:      services.NewScoreService(db, log, metrics, clients.Locker, r.Score, r.Criteria, r.Idea, activity),
		Scoring:    scoring,
		Comparison: services.NewComparisonService(log, metrics, cfg.Ranking.Concurrency, r.Comparison, r.Idea, scoring, activity),
	}
}
