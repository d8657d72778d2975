package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type ComparisonHandler struct {
	log         *logger.Logger
	comparisons services.ComparisonService
}

func NewComparisonHandler(log *logger.Logger, comparisons services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		log:         log.With("handler", "ComparisonHandler"),
		comparisons: comparisons,
	}
}

type createComparisonRequest struct {
	UserID      uuid.UUID   `json:"user_id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	IdeaIDs     []uuid.UUID `json:"idea_ids"`
}

// POST /api/comparisons
func (h *ComparisonHandler) Create(c *gin.Context) {
	var req createComparisonRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.comparisons.Create(requestDBC(c), services.CreateComparisonInput{
		UserID:      bodyUserID(c, req.UserID),
		Name:        req.Name,
		Description: req.Description,
		IdeaIDs:     req.IdeaIDs,
	})
	if err != nil {
		respondServiceError(c, h.log, "CreateComparison", err)
		return
	}
	response.RespondCreated(c, gin.H{"comparison": row})
}

// GET /api/comparisons?user_id=
func (h *ComparisonHandler) List(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	rows, err := h.comparisons.ListByUser(requestDBC(c), userID)
	if err != nil {
		respondServiceError(c, h.log, "ListComparisons", err)
		return
	}
	response.RespondOK(c, gin.H{"comparisons": rows})
}

// GET /api/comparisons/:id
func (h *ComparisonHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.comparisons.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "GetComparison", err)
		return
	}
	response.RespondOK(c, gin.H{"comparison": row})
}

// GET /api/comparisons/:id/evaluate
func (h *ComparisonHandler) Evaluate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := h.comparisons.Evaluate(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "EvaluateComparison", err)
		return
	}
	response.RespondOK(c, res)
}

// DELETE /api/comparisons/:id
func (h *ComparisonHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.comparisons.Delete(requestDBC(c), id); err != nil {
		respondServiceError(c, h.log, "DeleteComparison", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
