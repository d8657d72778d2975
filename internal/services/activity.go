package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type ActivityEntry struct {
	EntityType  string
	EntityID    uuid.UUID
	ActionType  string
	Description string
	UserID      uuid.UUID
	Metadata    map[string]any
}

// ActivityService is the audit sink. Record never fails the calling operation.
type ActivityService interface {
	Record(dbc dbctx.Context, entry ActivityEntry)
	ListByEntity(dbc dbctx.Context, entityType string, entityID uuid.UUID) ([]*types.Activity, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Activity, error)
}

type activityService struct {
	log  *logger.Logger
	repo repos.ActivityRepo
}

func NewActivityService(log *logger.Logger, repo repos.ActivityRepo) ActivityService {
	return &activityService{
		log:  log.With("service", "ActivityService"),
		repo: repo,
	}
}

func (s *activityService) Record(dbc dbctx.Context, entry ActivityEntry) {
	meta := datatypes.JSON([]byte("{}"))
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			s.log.Warn("Activity metadata not serializable", "entity_type", entry.EntityType, "error", err)
		} else {
			meta = datatypes.JSON(raw)
		}
	}
	row := &types.Activity{
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		ActionType:  entry.ActionType,
		Description: entry.Description,
		UserID:      entry.UserID,
		Metadata:    meta,
	}
	if _, err := s.repo.Create(dbc, []*types.Activity{row}); err != nil {
		s.log.Warn("Failed to record activity",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"action_type", entry.ActionType,
			"user_id", entry.UserID,
			"error", err,
		)
	}
}

func (s *activityService) ListByEntity(dbc dbctx.Context, entityType string, entityID uuid.UUID) ([]*types.Activity, error) {
	rows, err := s.repo.ListByEntity(dbc, entityType, entityID)
	if err != nil {
		return nil, types.Wrap(types.CodeInternal, "activity.list", err)
	}
	return rows, nil
}

func (s *activityService) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Activity, error) {
	rows, err := s.repo.ListByUserID(dbc, userID, limit)
	if err != nil {
		return nil, types.Wrap(types.CodeInternal, "activity.list_by_user", err)
	}
	return rows, nil
}
