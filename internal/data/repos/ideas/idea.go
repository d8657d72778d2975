package ideas

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type IdeaRepo interface {
	Create(dbc dbctx.Context, rows []*types.Idea) ([]*types.Idea, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Idea, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
}

type ideaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
	return &ideaRepo{db: db, log: baseLog.With("repo", "IdeaRepo")}
}

func (r *ideaRepo) Create(dbc dbctx.Context, rows []*types.Idea) ([]*types.Idea, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.Idea{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ideaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error) {
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *ideaRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Idea, error) {
	t := dbc.DB(r.db)
	var results []*types.Idea
	if len(ids) == 0 {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUserID returns the user's ideas oldest first.
func (r *ideaRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error) {
	t := dbc.DB(r.db)
	var results []*types.Idea
	if userID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ideaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
	t := dbc.DB(r.db)
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]any{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Idea{}).
		Where("id = ?", id).
		Updates(updates).Error
}
