package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/ideascore-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ideascore-backend/internal/http/middleware"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	HealthHandler     *httpH.HealthHandler
	IdeaHandler       *httpH.IdeaHandler
	CriteriaHandler   *httpH.CriteriaHandler
	ScoreHandler      *httpH.ScoreHandler
	ScoringHandler    *httpH.ScoringHandler
	ComparisonHandler *httpH.ComparisonHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.AttachPrincipal())
	{
		// Ideas
		if cfg.IdeaHandler != nil {
			api.POST("/ideas", cfg.IdeaHandler.Create)
			api.GET("/ideas", cfg.IdeaHandler.List)
			api.GET("/ideas/:id", cfg.IdeaHandler.Get)
			api.GET("/activities", cfg.IdeaHandler.Activities)
		}

		// Criteria
		if cfg.CriteriaHandler != nil {
			api.POST("/criteria", cfg.CriteriaHandler.Create)
			api.GET("/criteria", cfg.CriteriaHandler.List)
			api.GET("/criteria/defaults", cfg.CriteriaHandler.ListDefaults)
			api.POST("/criteria/reorder", cfg.CriteriaHandler.Reorder)
			api.POST("/criteria/seed", cfg.CriteriaHandler.SeedDefaults)
			api.POST("/criteria/copy", cfg.CriteriaHandler.CopyAll)
			api.GET("/criteria/:id", cfg.CriteriaHandler.Get)
			api.PATCH("/criteria/:id", cfg.CriteriaHandler.Update)
			api.DELETE("/criteria/:id", cfg.CriteriaHandler.Delete)
			api.POST("/criteria/:id/duplicate", cfg.CriteriaHandler.Duplicate)
		}

		// Scores
		if cfg.ScoreHandler != nil {
			api.PUT("/scores", cfg.ScoreHandler.Upsert)
			api.GET("/scores", cfg.ScoreHandler.List)
			api.GET("/scores/:id", cfg.ScoreHandler.Get)
			api.DELETE("/scores/:id", cfg.ScoreHandler.Delete)
			api.GET("/ideas/:id/scores", cfg.ScoreHandler.ListByIdea)
			api.PUT("/ideas/:id/scores", cfg.ScoreHandler.BulkUpsert)
			api.DELETE("/ideas/:id/scores", cfg.ScoreHandler.DeleteAllForIdea)
			api.POST("/ideas/:id/scores/copy", cfg.ScoreHandler.Copy)
		}

		// Scoring engine
		if cfg.ScoringHandler != nil {
			api.GET("/ideas/:id/score", cfg.ScoringHandler.IdeaScore)
			api.POST("/ideas/:id/score/sync", cfg.ScoringHandler.SyncTotal)
			api.GET("/users/:id/ranking", cfg.ScoringHandler.Ranking)
			api.GET("/users/:id/score-stats", cfg.ScoringHandler.Stats)
		}

		// Comparisons
		if cfg.ComparisonHandler != nil {
			api.POST("/comparisons", cfg.ComparisonHandler.Create)
			api.GET("/comparisons", cfg.ComparisonHandler.List)
			api.GET("/comparisons/:id", cfg.ComparisonHandler.Get)
			api.GET("/comparisons/:id/evaluate", cfg.ComparisonHandler.Evaluate)
			api.DELETE("/comparisons/:id", cfg.ComparisonHandler.Delete)
		}
	}

	return r
}
