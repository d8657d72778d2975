package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type CriteriaHandler struct {
	log      *logger.Logger
	criteria services.CriteriaService
}

func NewCriteriaHandler(log *logger.Logger, criteria services.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{
		log:      log.With("handler", "CriteriaHandler"),
		criteria: criteria,
	}
}

type createCriterionRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Weight      int       `json:"weight"`
	IsDefault   bool      `json:"is_default"`
	Order       int       `json:"order"`
}

type updateCriterionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Weight      *int    `json:"weight"`
	IsDefault   *bool   `json:"is_default"`
	Order       *int    `json:"order"`
}

type reorderRequest struct {
	Items []struct {
		CriteriaID uuid.UUID `json:"criteria_id"`
		Order      int       `json:"order"`
	} `json:"items"`
}

type userRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type duplicateCriterionRequest struct {
	TargetUserID uuid.UUID `json:"target_user_id"`
}

type copyCriteriaRequest struct {
	SourceUserID uuid.UUID `json:"source_user_id"`
	TargetUserID uuid.UUID `json:"target_user_id"`
}

// POST /api/criteria
func (h *CriteriaHandler) Create(c *gin.Context) {
	var req createCriterionRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.criteria.Create(requestDBC(c), services.CreateCriterionInput{
		UserID:      bodyUserID(c, req.UserID),
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		IsDefault:   req.IsDefault,
		Order:       req.Order,
	})
	if err != nil {
		respondServiceError(c, h.log, "CreateCriterion", err)
		return
	}
	response.RespondCreated(c, gin.H{"criterion": row})
}

// GET /api/criteria/:id
func (h *CriteriaHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.criteria.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "GetCriterion", err)
		return
	}
	response.RespondOK(c, gin.H{"criterion": row})
}

// GET /api/criteria?user_id=
func (h *CriteriaHandler) List(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	rows, err := h.criteria.ListByUser(requestDBC(c), userID)
	if err != nil {
		respondServiceError(c, h.log, "ListCriteria", err)
		return
	}
	response.RespondOK(c, gin.H{"criteria": rows})
}

// GET /api/criteria/defaults
func (h *CriteriaHandler) ListDefaults(c *gin.Context) {
	rows, err := h.criteria.ListDefaults(requestDBC(c))
	if err != nil {
		respondServiceError(c, h.log, "ListDefaultCriteria", err)
		return
	}
	response.RespondOK(c, gin.H{"criteria": rows})
}

// PATCH /api/criteria/:id
func (h *CriteriaHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req updateCriterionRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.criteria.Update(requestDBC(c), id, services.CriterionPatch{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		IsDefault:   req.IsDefault,
		Order:       req.Order,
	})
	if err != nil {
		respondServiceError(c, h.log, "UpdateCriterion", err)
		return
	}
	response.RespondOK(c, gin.H{"criterion": row})
}

// DELETE /api/criteria/:id
func (h *CriteriaHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	n, err := h.criteria.Delete(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "DeleteCriterion", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true, "deleted_scores": n})
}

// POST /api/criteria/reorder
func (h *CriteriaHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}
	updates := make([]services.OrderUpdate, 0, len(req.Items))
	for _, it := range req.Items {
		updates = append(updates, services.OrderUpdate{CriteriaID: it.CriteriaID, Order: it.Order})
	}
	if err := h.criteria.Reorder(requestDBC(c), updates); err != nil {
		respondServiceError(c, h.log, "ReorderCriteria", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/criteria/seed
func (h *CriteriaHandler) SeedDefaults(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	rows, err := h.criteria.SeedDefaults(requestDBC(c), bodyUserID(c, req.UserID))
	if err != nil {
		respondServiceError(c, h.log, "SeedDefaultCriteria", err)
		return
	}
	response.RespondCreated(c, gin.H{"criteria": rows})
}

// POST /api/criteria/:id/duplicate
func (h *CriteriaHandler) Duplicate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req duplicateCriterionRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.criteria.Duplicate(requestDBC(c), id, bodyUserID(c, req.TargetUserID))
	if err != nil {
		respondServiceError(c, h.log, "DuplicateCriterion", err)
		return
	}
	response.RespondCreated(c, gin.H{"criterion": row})
}

// POST /api/criteria/copy
func (h *CriteriaHandler) CopyAll(c *gin.Context) {
	var req copyCriteriaRequest
	if !bindJSON(c, &req) {
		return
	}
	rows, err := h.criteria.CopyAll(requestDBC(c), req.SourceUserID, bodyUserID(c, req.TargetUserID))
	if err != nil {
		respondServiceError(c, h.log, "CopyCriteria", err)
		return
	}
	response.RespondCreated(c, gin.H{"criteria": rows})
}
