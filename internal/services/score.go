package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/keylock"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type UpsertScoreInput struct {
	IdeaID     uuid.UUID
	CriteriaID uuid.UUID
	UserID     uuid.UUID
	Score      int
	Notes      *string
}

type BulkScoreEntry struct {
	CriteriaID uuid.UUID
	Score      int
	Notes      *string
}

type UpsertResult struct {
	Score   *types.Score `json:"score"`
	Created bool         `json:"created"`
}

type ScoreService interface {
	// Upsert keeps at most one score per (idea, criterion, user). Created
	// reports whether a new row was inserted.
	Upsert(dbc dbctx.Context, in UpsertScoreInput) (*UpsertResult, error)
	BulkUpsert(dbc dbctx.Context, ideaID, userID uuid.UUID, entries []BulkScoreEntry) ([]*UpsertResult, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Score, error)
	ListByIdea(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.Score, error)
	ListByIdeaAndUser(dbc dbctx.Context, ideaID, userID uuid.UUID) ([]*types.Score, error)
	ListByCriteria(dbc dbctx.Context, criteriaID uuid.UUID) ([]*types.Score, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Score, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteAllForIdea(dbc dbctx.Context, ideaID uuid.UUID) ([]uuid.UUID, error)
	// Copy writes userID's scores on sourceIdeaID onto targetIdeaID. Scores
	// owned by other users are skipped.
	Copy(dbc dbctx.Context, sourceIdeaID, targetIdeaID, userID uuid.UUID) ([]*types.Score, error)
}

type scoreService struct {
	db           *gorm.DB
	log          *logger.Logger
	obs          opObserver
	locker       keylock.Locker
	scoreRepo    repos.ScoreRepo
	criteriaRepo repos.CriteriaRepo
	ideaRepo     repos.IdeaRepo
	activity     ActivityService
}

func NewScoreService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	locker keylock.Locker,
	scoreRepo repos.ScoreRepo,
	criteriaRepo repos.CriteriaRepo,
	ideaRepo repos.IdeaRepo,
	activity ActivityService,
) ScoreService {
	serviceLog := log.With("service", "ScoreService")
	if locker == nil {
		locker = keylock.NewLocal()
	}
	return &scoreService{
		db:           db,
		log:          serviceLog,
		obs:          opObserver{log: serviceLog, metrics: metrics},
		locker:       locker,
		scoreRepo:    scoreRepo,
		criteriaRepo: criteriaRepo,
		ideaRepo:     ideaRepo,
		activity:     activity,
	}
}

func scoreLockKey(ideaID, criteriaID, userID uuid.UUID) string {
	return "score:" + ideaID.String() + ":" + criteriaID.String() + ":" + userID.String()
}

func (s *scoreService) Upsert(dbc dbctx.Context, in UpsertScoreInput) (out *UpsertResult, err error) {
	const op = "score.upsert"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err,
			"idea_id", in.IdeaID, "criteria_id", in.CriteriaID, "user_id", in.UserID, "score", in.Score)
	}(time.Now())

	if err := s.checkKey(op, in.IdeaID, in.UserID); err != nil {
		return nil, err
	}
	if err := requireID(op, "criteria_id", in.CriteriaID); err != nil {
		return nil, err
	}
	if err := validateScore(op, in.Score); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.mustGetIdea(dbc, op, in.IdeaID); err != nil {
		return nil, err
	}
	if err := s.requireCriteria(dbc, op, []uuid.UUID{in.CriteriaID}); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(dbc.Ctx, scoreLockKey(in.IdeaID, in.CriteriaID, in.UserID))
	if err != nil {
		return nil, fmt.Errorf("lock score key: %w", err)
	}
	defer unlock()

	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		res, err := s.upsertOne(inner, in.IdeaID, in.UserID, in.CriteriaID, in.Score, in.Notes)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordScored(dbc, []*UpsertResult{out})
	return out, nil
}

// upsertOne must run with the key lock held.
func (s *scoreService) upsertOne(dbc dbctx.Context, ideaID, userID, criteriaID uuid.UUID, value int, notes *string) (*UpsertResult, error) {
	existing, err := s.scoreRepo.GetByKey(dbc, ideaID, criteriaID, userID)
	if err != nil {
		return nil, fmt.Errorf("load score: %w", err)
	}
	row := &types.Score{
		IdeaID:     ideaID,
		CriteriaID: criteriaID,
		UserID:     userID,
		Value:      value,
		Notes:      trimPtr(notes),
	}
	if err := s.scoreRepo.Upsert(dbc, row); err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}
	stored, err := s.scoreRepo.GetByKey(dbc, ideaID, criteriaID, userID)
	if err != nil {
		return nil, fmt.Errorf("reload score: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("score for idea %s criterion %s vanished after upsert", ideaID, criteriaID)
	}
	return &UpsertResult{Score: stored, Created: existing == nil}, nil
}

func (s *scoreService) BulkUpsert(dbc dbctx.Context, ideaID, userID uuid.UUID, entries []BulkScoreEntry) (out []*UpsertResult, err error) {
	const op = "score.bulk_upsert"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "idea_id", ideaID, "user_id", userID, "count", len(entries))
	}(time.Now())

	if err := s.checkKey(op, ideaID, userID); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []*UpsertResult{}, nil
	}
	criteriaIDs := make([]uuid.UUID, 0, len(entries))
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := requireID(op, "criteria_id", e.CriteriaID); err != nil {
			return nil, err
		}
		if err := validateScore(op, e.Score); err != nil {
			return nil, err
		}
		criteriaIDs = append(criteriaIDs, e.CriteriaID)
		keys = append(keys, scoreLockKey(ideaID, e.CriteriaID, userID))
	}
	if err := requireOwner(dbc.Ctx, op, userID); err != nil {
		return nil, err
	}
	if _, err := s.mustGetIdea(dbc, op, ideaID); err != nil {
		return nil, err
	}
	if err := s.requireCriteria(dbc, op, criteriaIDs); err != nil {
		return nil, err
	}

	unlock, err := keylock.LockAll(dbc.Ctx, s.locker, keys)
	if err != nil {
		return nil, fmt.Errorf("lock score keys: %w", err)
	}
	defer unlock()

	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		results := make([]*UpsertResult, 0, len(entries))
		for _, e := range entries {
			res, err := s.upsertOne(inner, ideaID, userID, e.CriteriaID, e.Score, e.Notes)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		out = results
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordScored(dbc, out)
	return out, nil
}

func (s *scoreService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Score, error) {
	row, err := s.scoreRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load score: %w", err)
	}
	if row == nil {
		return nil, types.NotFound("score.get", "score %s not found", id)
	}
	return row, nil
}

func (s *scoreService) ListByIdea(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.Score, error) {
	rows, err := s.scoreRepo.ListByIdeaID(dbc, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list scores by idea: %w", err)
	}
	return rows, nil
}

func (s *scoreService) ListByIdeaAndUser(dbc dbctx.Context, ideaID, userID uuid.UUID) ([]*types.Score, error) {
	rows, err := s.scoreRepo.ListByIdeaAndUser(dbc, ideaID, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores by idea and user: %w", err)
	}
	return rows, nil
}

func (s *scoreService) ListByCriteria(dbc dbctx.Context, criteriaID uuid.UUID) ([]*types.Score, error) {
	rows, err := s.scoreRepo.ListByCriteriaID(dbc, criteriaID)
	if err != nil {
		return nil, fmt.Errorf("list scores by criterion: %w", err)
	}
	return rows, nil
}

func (s *scoreService) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Score, error) {
	rows, err := s.scoreRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores by user: %w", err)
	}
	return rows, nil
}

func (s *scoreService) Delete(dbc dbctx.Context, id uuid.UUID) (err error) {
	const op = "score.delete"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "score_id", id)
	}(time.Now())

	row, err := s.scoreRepo.GetByID(dbc, id)
	if err != nil {
		return fmt.Errorf("load score: %w", err)
	}
	if row == nil {
		return types.NotFound(op, "score %s not found", id)
	}
	if err := requireOwner(dbc.Ctx, op, row.UserID); err != nil {
		return err
	}
	if err := s.scoreRepo.FullDeleteByIDs(dbc, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityScore,
		EntityID:    id,
		ActionType:  types.ActionDeleted,
		Description: "Deleted score",
		UserID:      row.UserID,
		Metadata:    map[string]any{"idea_id": row.IdeaID.String(), "criteria_id": row.CriteriaID.String()},
	})
	return nil
}

func (s *scoreService) DeleteAllForIdea(dbc dbctx.Context, ideaID uuid.UUID) (ids []uuid.UUID, err error) {
	const op = "score.delete_all_for_idea"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "idea_id", ideaID)
	}(time.Now())

	idea, err := s.mustGetIdea(dbc, op, ideaID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, idea.UserID); err != nil {
		return nil, err
	}
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		deleted, err := s.scoreRepo.DeleteByIdeaID(inner, ideaID)
		if err != nil {
			return fmt.Errorf("delete scores for idea: %w", err)
		}
		ids = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityIdea,
		EntityID:    ideaID,
		ActionType:  types.ActionDeleted,
		Description: fmt.Sprintf("Deleted %d scores", len(ids)),
		UserID:      idea.UserID,
		Metadata:    map[string]any{"deleted_scores": len(ids)},
	})
	return ids, nil
}

func (s *scoreService) Copy(dbc dbctx.Context, sourceIdeaID, targetIdeaID, userID uuid.UUID) (out []*types.Score, err error) {
	const op = "score.copy"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err,
			"source_idea_id", sourceIdeaID, "target_idea_id", targetIdeaID, "user_id", userID)
	}(time.Now())

	if err := s.checkKey(op, sourceIdeaID, userID); err != nil {
		return nil, err
	}
	if err := requireID(op, "target_idea_id", targetIdeaID); err != nil {
		return nil, err
	}
	if sourceIdeaID == targetIdeaID {
		return nil, types.Validation(op, "source and target idea must differ")
	}
	if err := requireOwner(dbc.Ctx, op, userID); err != nil {
		return nil, err
	}
	if _, err := s.mustGetIdea(dbc, op, sourceIdeaID); err != nil {
		return nil, err
	}
	if _, err := s.mustGetIdea(dbc, op, targetIdeaID); err != nil {
		return nil, err
	}

	src, err := s.scoreRepo.ListByIdeaAndUser(dbc, sourceIdeaID, userID)
	if err != nil {
		return nil, fmt.Errorf("load source scores: %w", err)
	}
	if len(src) == 0 {
		return []*types.Score{}, nil
	}
	keys := make([]string, 0, len(src))
	for _, sc := range src {
		keys = append(keys, scoreLockKey(targetIdeaID, sc.CriteriaID, userID))
	}
	unlock, err := keylock.LockAll(dbc.Ctx, s.locker, keys)
	if err != nil {
		return nil, fmt.Errorf("lock score keys: %w", err)
	}
	defer unlock()

	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		copied := make([]*types.Score, 0, len(src))
		for _, sc := range src {
			res, err := s.upsertOne(inner, targetIdeaID, userID, sc.CriteriaID, sc.Value, copiedNote(sc.Notes))
			if err != nil {
				return err
			}
			copied = append(copied, res.Score)
		}
		out = copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityIdea,
		EntityID:    targetIdeaID,
		ActionType:  types.ActionCopied,
		Description: fmt.Sprintf("Copied %d scores", len(out)),
		UserID:      userID,
		Metadata:    map[string]any{"source_idea_id": sourceIdeaID.String(), "count": len(out)},
	})
	return out, nil
}

func copiedNote(notes *string) *string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return ptrString("Copied")
	}
	return ptrString("Copied: " + strings.TrimSpace(*notes))
}

func (s *scoreService) checkKey(op string, ideaID, userID uuid.UUID) error {
	if err := requireID(op, "idea_id", ideaID); err != nil {
		return err
	}
	return requireID(op, "user_id", userID)
}

func (s *scoreService) mustGetIdea(dbc dbctx.Context, op string, id uuid.UUID) (*types.Idea, error) {
	idea, err := s.ideaRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, types.NotFound(op, "idea %s not found", id)
	}
	return idea, nil
}

func (s *scoreService) requireCriteria(dbc dbctx.Context, op string, ids []uuid.UUID) error {
	rows, err := s.criteriaRepo.GetByIDs(dbc, ids)
	if err != nil {
		return fmt.Errorf("load criteria: %w", err)
	}
	found := make(map[uuid.UUID]struct{}, len(rows))
	for _, r := range rows {
		found[r.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return types.NotFound(op, "criterion %s not found", id)
		}
	}
	return nil
}

func (s *scoreService) recordScored(dbc dbctx.Context, results []*UpsertResult) {
	for _, r := range results {
		action := types.ActionUpdated
		if r.Created {
			action = types.ActionScored
		}
		s.activity.Record(dbc, ActivityEntry{
			EntityType:  types.EntityScore,
			EntityID:    r.Score.ID,
			ActionType:  action,
			Description: fmt.Sprintf("Scored %d", r.Score.Value),
			UserID:      r.Score.UserID,
			Metadata: map[string]any{
				"idea_id":     r.Score.IdeaID.String(),
				"criteria_id": r.Score.CriteriaID.String(),
				"score":       r.Score.Value,
			},
		})
	}
}
