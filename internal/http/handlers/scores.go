package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type ScoreHandler struct {
	log    *logger.Logger
	scores services.ScoreService
}

func NewScoreHandler(log *logger.Logger, scores services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		log:    log.With("handler", "ScoreHandler"),
		scores: scores,
	}
}

type upsertScoreRequest struct {
	IdeaID     uuid.UUID `json:"idea_id"`
	CriteriaID uuid.UUID `json:"criteria_id"`
	UserID     uuid.UUID `json:"user_id"`
	Score      int       `json:"score"`
	Notes      *string   `json:"notes"`
}

type bulkUpsertRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Scores []struct {
		CriteriaID uuid.UUID `json:"criteria_id"`
		Score      int       `json:"score"`
		Notes      *string   `json:"notes"`
	} `json:"scores"`
}

type copyScoresRequest struct {
	TargetIdeaID uuid.UUID `json:"target_idea_id"`
	UserID       uuid.UUID `json:"user_id"`
}

// PUT /api/scores
func (h *ScoreHandler) Upsert(c *gin.Context) {
	var req upsertScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.scores.Upsert(requestDBC(c), services.UpsertScoreInput{
		IdeaID:     req.IdeaID,
		CriteriaID: req.CriteriaID,
		UserID:     bodyUserID(c, req.UserID),
		Score:      req.Score,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, h.log, "UpsertScore", err)
		return
	}
	if res.Created {
		response.RespondCreated(c, res)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/ideas/:id/scores
func (h *ScoreHandler) BulkUpsert(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req bulkUpsertRequest
	if !bindJSON(c, &req) {
		return
	}
	entries := make([]services.BulkScoreEntry, 0, len(req.Scores))
	for _, s := range req.Scores {
		entries = append(entries, services.BulkScoreEntry{CriteriaID: s.CriteriaID, Score: s.Score, Notes: s.Notes})
	}
	res, err := h.scores.BulkUpsert(requestDBC(c), ideaID, bodyUserID(c, req.UserID), entries)
	if err != nil {
		respondServiceError(c, h.log, "BulkUpsertScores", err)
		return
	}
	response.RespondOK(c, gin.H{"results": res})
}

// GET /api/scores/:id
func (h *ScoreHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.scores.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "GetScore", err)
		return
	}
	response.RespondOK(c, gin.H{"score": row})
}

// GET /api/scores?criteria_id= | ?user_id=
func (h *ScoreHandler) List(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("criteria_id")); raw != "" {
		criteriaID, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "query", "invalid criteria_id")
			return
		}
		rows, err := h.scores.ListByCriteria(requestDBC(c), criteriaID)
		if err != nil {
			respondServiceError(c, h.log, "ListScoresByCriteria", err)
			return
		}
		response.RespondOK(c, gin.H{"scores": rows})
		return
	}
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	rows, err := h.scores.ListByUser(requestDBC(c), userID)
	if err != nil {
		respondServiceError(c, h.log, "ListScoresByUser", err)
		return
	}
	response.RespondOK(c, gin.H{"scores": rows})
}

// GET /api/ideas/:id/scores?user_id=
func (h *ScoreHandler) ListByIdea(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	dbc := requestDBC(c)
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "query", "invalid user_id")
			return
		}
		rows, err := h.scores.ListByIdeaAndUser(dbc, ideaID, userID)
		if err != nil {
			respondServiceError(c, h.log, "ListScoresByIdeaAndUser", err)
			return
		}
		response.RespondOK(c, gin.H{"scores": rows})
		return
	}
	rows, err := h.scores.ListByIdea(dbc, ideaID)
	if err != nil {
		respondServiceError(c, h.log, "ListScoresByIdea", err)
		return
	}
	response.RespondOK(c, gin.H{"scores": rows})
}

// DELETE /api/scores/:id
func (h *ScoreHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.scores.Delete(requestDBC(c), id); err != nil {
		respondServiceError(c, h.log, "DeleteScore", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// DELETE /api/ideas/:id/scores
func (h *ScoreHandler) DeleteAllForIdea(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	ids, err := h.scores.DeleteAllForIdea(requestDBC(c), ideaID)
	if err != nil {
		respondServiceError(c, h.log, "DeleteScoresForIdea", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted_ids": ids})
}

// POST /api/ideas/:id/scores/copy
func (h *ScoreHandler) Copy(c *gin.Context) {
	sourceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req copyScoresRequest
	if !bindJSON(c, &req) {
		return
	}
	rows, err := h.scores.Copy(requestDBC(c), sourceID, req.TargetIdeaID, bodyUserID(c, req.UserID))
	if err != nil {
		respondServiceError(c, h.log, "CopyScores", err)
		return
	}
	response.RespondCreated(c, gin.H{"scores": rows})
}
