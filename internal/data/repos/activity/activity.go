package activity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(dbc dbctx.Context, rows []*types.Activity) ([]*types.Activity, error)
	ListByEntity(dbc dbctx.Context, entityType string, entityID uuid.UUID) ([]*types.Activity, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Activity, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) Create(dbc dbctx.Context, rows []*types.Activity) ([]*types.Activity, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.Activity{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityRepo) ListByEntity(dbc dbctx.Context, entityType string, entityID uuid.UUID) ([]*types.Activity, error) {
	t := dbc.DB(r.db)
	var results []*types.Activity
	if entityType == "" || entityID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Activity, error) {
	t := dbc.DB(r.db)
	var results []*types.Activity
	if userID == uuid.Nil {
		return results, nil
	}
	q := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
