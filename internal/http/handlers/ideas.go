package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
	"github.com/yungbote/ideascore-backend/internal/services"
)

type IdeaHandler struct {
	log      *logger.Logger
	ideas    services.IdeaService
	activity services.ActivityService
}

func NewIdeaHandler(log *logger.Logger, ideas services.IdeaService, activity services.ActivityService) *IdeaHandler {
	return &IdeaHandler{
		log:      log.With("handler", "IdeaHandler"),
		ideas:    ideas,
		activity: activity,
	}
}

type createIdeaRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// POST /api/ideas
func (h *IdeaHandler) Create(c *gin.Context) {
	var req createIdeaRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.ideas.Create(requestDBC(c), services.CreateIdeaInput{
		UserID:      bodyUserID(c, req.UserID),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, h.log, "CreateIdea", err)
		return
	}
	response.RespondCreated(c, gin.H{"idea": row})
}

// GET /api/ideas?user_id=
func (h *IdeaHandler) List(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	rows, err := h.ideas.ListByUser(requestDBC(c), userID)
	if err != nil {
		respondServiceError(c, h.log, "ListIdeas", err)
		return
	}
	response.RespondOK(c, gin.H{"ideas": rows})
}

// GET /api/ideas/:id
func (h *IdeaHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.ideas.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, h.log, "GetIdea", err)
		return
	}
	response.RespondOK(c, gin.H{"idea": row})
}

// GET /api/activities?entity_type=&entity_id=
func (h *IdeaHandler) Activities(c *gin.Context) {
	entityType := strings.TrimSpace(c.Query("entity_type"))
	entityID, err := uuid.Parse(strings.TrimSpace(c.Query("entity_id")))
	if entityType == "" || err != nil {
		respondBadRequest(c, "query", "entity_type and entity_id are required")
		return
	}
	rows, err := h.activity.ListByEntity(requestDBC(c), entityType, entityID)
	if err != nil {
		respondServiceError(c, h.log, "ListActivities", err)
		return
	}
	response.RespondOK(c, gin.H{"activities": rows})
}
