package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type ScoringHandler struct {
	log     *logger.Logger
	scoring services.ScoringService
}

func NewScoringHandler(log *logger.Logger, scoring services.ScoringService) *ScoringHandler {
	return &ScoringHandler{
		log:     log.With("handler", "ScoringHandler"),
		scoring: scoring,
	}
}

// GET /api/ideas/:id/score
func (h *ScoringHandler) IdeaScore(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := h.scoring.CalculateIdeaScore(requestDBC(c), ideaID)
	if err != nil {
		respondServiceError(c, h.log, "CalculateIdeaScore", err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/ideas/:id/score/sync
func (h *ScoringHandler) SyncTotal(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := h.scoring.SyncIdeaTotalScore(requestDBC(c), ideaID)
	if err != nil {
		respondServiceError(c, h.log, "SyncIdeaTotalScore", err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/users/:id/ranking?limit=
func (h *ScoringHandler) Ranking(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	rows, err := h.scoring.RankIdeasByUser(requestDBC(c), userID, limit)
	if err != nil {
		respondServiceError(c, h.log, "RankIdeasByUser", err)
		return
	}
	response.RespondOK(c, gin.H{"ideas": rows})
}

// GET /api/users/:id/score-stats
func (h *ScoringHandler) Stats(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	st, err := h.scoring.StatsByUser(requestDBC(c), userID)
	if err != nil {
		respondServiceError(c, h.log, "ScoreStatsByUser", err)
		return
	}
	response.RespondOK(c, st)
}
