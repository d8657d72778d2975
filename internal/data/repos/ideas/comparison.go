package ideas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type IdeaComparisonRepo interface {
	Create(dbc dbctx.Context, rows []*types.IdeaComparison) ([]*types.IdeaComparison, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.IdeaComparison, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.IdeaComparison, error)
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type ideaComparisonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaComparisonRepo(db *gorm.DB, baseLog *logger.Logger) IdeaComparisonRepo {
	return &ideaComparisonRepo{db: db, log: baseLog.With("repo", "IdeaComparisonRepo")}
}

func (r *ideaComparisonRepo) Create(dbc dbctx.Context, rows []*types.IdeaComparison) ([]*types.IdeaComparison, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.IdeaComparison{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ideaComparisonRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.IdeaComparison, error) {
	t := dbc.DB(r.db)
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.IdeaComparison
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ideaComparisonRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.IdeaComparison, error) {
	t := dbc.DB(r.db)
	var results []*types.IdeaComparison
	if userID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ideaComparisonRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.DB(r.db)
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.IdeaComparison{}).Error
}
