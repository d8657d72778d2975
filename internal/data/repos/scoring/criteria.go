package scoring

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type CriteriaRepo interface {
	Create(dbc dbctx.Context, rows []*types.Criterion) ([]*types.Criterion, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Criterion, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Criterion, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Criterion, error)
	ListDefaults(dbc dbctx.Context) ([]*types.Criterion, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type criteriaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCriteriaRepo(db *gorm.DB, baseLog *logger.Logger) CriteriaRepo {
	return &criteriaRepo{db: db, log: baseLog.With("repo", "CriteriaRepo")}
}

func (r *criteriaRepo) Create(dbc dbctx.Context, rows []*types.Criterion) ([]*types.Criterion, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.Criterion{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *criteriaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Criterion, error) {
	t := dbc.DB(r.db)
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Criterion
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

func (r *criteriaRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Criterion, error) {
	t := dbc.DB(r.db)
	var results []*types.Criterion
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

func (r *criteriaRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Criterion, error) {
	t := dbc.DB(r.db)
	var results []*types.Criterion
	if userID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *criteriaRepo) ListDefaults(dbc dbctx.Context) ([]*types.Criterion, error) {
	t := dbc.DB(r.db)
	var results []*types.Criterion
	if err := t.WithContext(dbc.Ctx).
		Where("is_default = ?", true).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *criteriaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
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
		Model(&types.Criterion{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *criteriaRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.DB(r.db)
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.Criterion{}).Error
}
