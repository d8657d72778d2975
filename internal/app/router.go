package app

import (
	"github.com/gin-gonic/gin"

	httpx "github.com/yungbote/ideascore-backend/internal/http"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpx.NewRouter(httpx.RouterConfig{
		Log:               log.With("component", "http"),
		Metrics:           metrics,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORS.AllowOrigins,
		HealthHandler:     h.Health,
		IdeaHandler:       h.Idea,
		CriteriaHandler:   h.Criteria,
		ScoreHandler:      h.Score,
		ScoringHandler:    h.Scoring,
		ComparisonHandler: h.Comparison,
	})
}
