package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type CreateComparisonInput struct {
	UserID      uuid.UUID
	Name        string
	Description *string
	IdeaIDs     []uuid.UUID
}

type ComparisonEntry struct {
	Position    int         `json:"position"`
	IdeaID      uuid.UUID   `json:"idea_id"`
	Idea        *types.Idea `json:"idea,omitempty"`
	FinalScore  float64     `json:"final_score"`
	ScoresCount int         `json:"scores_count"`
	Missing     bool        `json:"missing"`
}

type ComparisonResult struct {
	Comparison *types.IdeaComparison `json:"comparison"`
	Entries    []ComparisonEntry     `json:"entries"`
}

type ComparisonService interface {
	// Create stores the grouping as given; referenced ideas are not checked.
	Create(dbc dbctx.Context, in CreateComparisonInput) (*types.IdeaComparison, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.IdeaComparison, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.IdeaComparison, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	// Evaluate scores every idea in stored order. Ideas that no longer exist
	// are reported as missing.
	Evaluate(dbc dbctx.Context, id uuid.UUID) (*ComparisonResult, error)
}

type comparisonService struct {
	log            *logger.Logger
	obs            opObserver
	concurrency    int
	comparisonRepo repos.IdeaComparisonRepo
	ideaRepo       repos.IdeaRepo
	scoring        ScoringService
	activity       ActivityService
}

func NewComparisonService(
	log *logger.Logger,
	metrics *observability.Metrics,
	concurrency int,
	comparisonRepo repos.IdeaComparisonRepo,
	ideaRepo repos.IdeaRepo,
	scoring ScoringService,
	activity ActivityService,
) ComparisonService {
	serviceLog := log.With("service", "ComparisonService")
	if concurrency <= 0 {
		concurrency = DefaultRankConcurrency
	}
	return &comparisonService{
		log:            serviceLog,
		obs:            opObserver{log: serviceLog, metrics: metrics},
		concurrency:    concurrency,
		comparisonRepo: comparisonRepo,
		ideaRepo:       ideaRepo,
		scoring:        scoring,
		activity:       activity,
	}
}

func (s *comparisonService) Create(dbc dbctx.Context, in CreateComparisonInput) (out *types.IdeaComparison, err error) {
	const op = "comparison.create"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "user_id", in.UserID, "name", in.Name, "ideas", len(in.IdeaIDs))
	}(time.Now())

	if err := requireID(op, "user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireOwner(dbc.Ctx, op, in.UserID); err != nil {
		return nil, err
	}
	if err := validateName(op, "name", in.Name); err != nil {
		return nil, err
	}

	ids := make(datatypes.JSONSlice[uuid.UUID], 0, len(in.IdeaIDs))
	ids = append(ids, in.IdeaIDs...)
	out = &types.IdeaComparison{
		UserID:      in.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: trimPtr(in.Description),
		IdeaIDs:     ids,
	}
	if _, err := s.comparisonRepo.Create(dbc, []*types.IdeaComparison{out}); err != nil {
		return nil, fmt.Errorf("create comparison: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityComparison,
		EntityID:    out.ID,
		ActionType:  types.ActionCreated,
		Description: fmt.Sprintf("Created comparison %q", out.Name),
		UserID:      out.UserID,
		Metadata:    map[string]any{"ideas": len(out.IdeaIDs)},
	})
	return out, nil
}

func (s *comparisonService) Get(dbc dbctx.Context, id uuid.UUID) (*types.IdeaComparison, error) {
	return s.mustGet(dbc, "comparison.get", id)
}

func (s *comparisonService) mustGet(dbc dbctx.Context, op string, id uuid.UUID) (*types.IdeaComparison, error) {
	row, err := s.comparisonRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load comparison: %w", err)
	}
	if row == nil {
		return nil, types.NotFound(op, "comparison %s not found", id)
	}
	return row, nil
}

func (s *comparisonService) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.IdeaComparison, error) {
	rows, err := s.comparisonRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	return rows, nil
}

func (s *comparisonService) Delete(dbc dbctx.Context, id uuid.UUID) (err error) {
	const op = "comparison.delete"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "comparison_id", id)
	}(time.Now())

	row, err := s.mustGet(dbc, op, id)
	if err != nil {
		return err
	}
	if err := requireOwner(dbc.Ctx, op, row.UserID); err != nil {
		return err
	}
	if err := s.comparisonRepo.FullDeleteByIDs(dbc, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityComparison,
		EntityID:    id,
		ActionType:  types.ActionDeleted,
		Description: fmt.Sprintf("Deleted comparison %q", row.Name),
		UserID:      row.UserID,
	})
	return nil
}

func (s *comparisonService) Evaluate(dbc dbctx.Context, id uuid.UUID) (out *ComparisonResult, err error) {
	const op = "comparison.evaluate"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "comparison_id", id)
	}(time.Now())

	cmp, err := s.mustGet(dbc, op, id)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideaRepo.GetByIDs(dbc, cmp.IdeaIDs)
	if err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Idea, len(ideas))
	for _, idea := range ideas {
		byID[idea.ID] = idea
	}

	entries := make([]ComparisonEntry, len(cmp.IdeaIDs))
	conc := s.concurrency
	if dbc.Tx != nil {
		conc = 1
	}
	g, gctx := errgroup.WithContext(dbc.Ctx)
	g.SetLimit(conc)
	for i, ideaID := range cmp.IdeaIDs {
		entries[i] = ComparisonEntry{Position: i + 1, IdeaID: ideaID}
		idea := byID[ideaID]
		if idea == nil {
			entries[i].Missing = true
			continue
		}
		entries[i].Idea = idea
		g.Go(func() error {
			res, err := s.scoring.CalculateIdeaScore(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, ideaID)
			if types.IsCode(err, types.CodeNotFound) {
				entries[i].Missing = true
				entries[i].Idea = nil
				return nil
			}
			if err != nil {
				return err
			}
			entries[i].FinalScore = res.FinalScore
			entries[i].ScoresCount = res.ScoresCount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ComparisonResult{Comparison: cmp, Entries: entries}, nil
}
