package scoring

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type ScoreRepo interface {
	Create(dbc dbctx.Context, rows []*types.Score) ([]*types.Score, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Score, error)
	GetByKey(dbc dbctx.Context, ideaID, criteriaID, userID uuid.UUID) (*types.Score, error)
	ListByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.Score, error)
	ListByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) ([]*types.Score, error)
	ListByIdeaAndUser(dbc dbctx.Context, ideaID, userID uuid.UUID) ([]*types.Score, error)
	ListByCriteriaID(dbc dbctx.Context, criteriaID uuid.UUID) ([]*types.Score, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Score, error)
	Upsert(dbc dbctx.Context, row *types.Score) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByCriteriaID(dbc dbctx.Context, criteriaID uuid.UUID) (int64, error)
	DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]uuid.UUID, error)
}

type scoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRepo {
	return &scoreRepo{db: db, log: baseLog.With("repo", "ScoreRepo")}
}

func (r *scoreRepo) Create(dbc dbctx.Context, rows []*types.Score) ([]*types.Score, error) {
	t := dbc.DB(r.db)
	if len(rows) == 0 {
		return []*types.Score{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scoreRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Score, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).WithContext(dbc.Ctx).Where("id = ?", id))
}

func (r *scoreRepo) GetByKey(dbc dbctx.Context, ideaID, criteriaID, userID uuid.UUID) (*types.Score, error) {
	if ideaID == uuid.Nil || criteriaID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).WithContext(dbc.Ctx).
		Where("idea_id = ? AND criteria_id = ? AND user_id = ?", ideaID, criteriaID, userID))
}

func (r *scoreRepo) first(q *gorm.DB) (*types.Score, error) {
	var rows []*types.Score
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *scoreRepo) ListByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.Score, error) {
	var results []*types.Score
	if ideaID == uuid.Nil {
		return results, nil
	}
	return r.list(dbc.DB(r.db).WithContext(dbc.Ctx).Where("idea_id = ?", ideaID))
}

func (r *scoreRepo) ListByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) ([]*types.Score, error) {
	var results []*types.Score
	if len(ideaIDs) == 0 {
		return results, nil
	}
	return r.list(dbc.DB(r.db).WithContext(dbc.Ctx).Where("idea_id IN ?", ideaIDs))
}

func (r *scoreRepo) ListByIdeaAndUser(dbc dbctx.Context, ideaID, userID uuid.UUID) ([]*types.Score, error) {
	var results []*types.Score
	if ideaID == uuid.Nil || userID == uuid.Nil {
		return results, nil
	}
	return r.list(dbc.DB(r.db).WithContext(dbc.Ctx).Where("idea_id = ? AND user_id = ?", ideaID, userID))
}

func (r *scoreRepo) ListByCriteriaID(dbc dbctx.Context, criteriaID uuid.UUID) ([]*types.Score, error) {
	var results []*types.Score
	if criteriaID == uuid.Nil {
		return results, nil
	}
	return r.list(dbc.DB(r.db).WithContext(dbc.Ctx).Where("criteria_id = ?", criteriaID))
}

func (r *scoreRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Score, error) {
	var results []*types.Score
	if userID == uuid.Nil {
		return results, nil
	}
	return r.list(dbc.DB(r.db).WithContext(dbc.Ctx).Where("user_id = ?", userID))
}

func (r *scoreRepo) list(q *gorm.DB) ([]*types.Score, error) {
	var results []*types.Score
	if err := q.
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert writes row keyed by (idea_id, criteria_id, user_id). On conflict only
// the score, notes and updated_at change; the stored id and created_at stay,
// so row.ID is only meaningful when the call inserted. Re-read by key.
func (r *scoreRepo) Upsert(dbc dbctx.Context, row *types.Score) error {
	t := dbc.DB(r.db)
	if row == nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idea_id"}, {Name: "criteria_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "notes", "updated_at"}),
		}).
		Create(row).Error
}

func (r *scoreRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.DB(r.db)
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.Score{}).Error
}

func (r *scoreRepo) DeleteByCriteriaID(dbc dbctx.Context, criteriaID uuid.UUID) (int64, error) {
	t := dbc.DB(r.db)
	if criteriaID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("criteria_id = ?", criteriaID).
		Delete(&types.Score{})
	return res.RowsAffected, res.Error
}

// DeleteByIdeaID removes every score on the idea and returns the removed ids.
func (r *scoreRepo) DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.DB(r.db)
	ids := []uuid.UUID{}
	if ideaID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Score{}).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.Score{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
