package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

const (
	DefaultRankLimit       = 10
	DefaultRankConcurrency = 4
)

type CriterionScore struct {
	Score         *types.Score     `json:"score"`
	Criterion     *types.Criterion `json:"criterion"`
	WeightedScore int              `json:"weighted_score"`
}

// IdeaScoreResult is the weighted average of an idea's scores against the
// current criterion weights: FinalScore = WeightedScore / TotalWeight.
type IdeaScoreResult struct {
	IdeaID         uuid.UUID        `json:"idea_id"`
	FinalScore     float64          `json:"final_score"`
	TotalWeight    int              `json:"total_weight"`
	WeightedScore  int              `json:"weighted_score"`
	CriteriaScores []CriterionScore `json:"criteria_scores"`
	ScoresCount    int              `json:"scores_count"`
}

type RankedIdea struct {
	Rank        int         `json:"rank"`
	Idea        *types.Idea `json:"idea"`
	FinalScore  float64     `json:"final_score"`
	TotalWeight int         `json:"total_weight"`
	ScoresCount int         `json:"scores_count"`
}

// ScoreStats summarizes raw (unweighted) scores. Distribution is keyed 1..10;
// stored values outside that range count toward the other fields only.
type ScoreStats struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Max          int         `json:"max"`
	Min          int         `json:"min"`
	Distribution map[int]int `json:"distribution"`
}

type ScoringConfig struct {
	Concurrency  int
	DefaultLimit int
}

type ScoringService interface {
	CalculateIdeaScore(dbc dbctx.Context, ideaID uuid.UUID) (*IdeaScoreResult, error)
	RankIdeasByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*RankedIdea, error)
	StatsByUser(dbc dbctx.Context, userID uuid.UUID) (*ScoreStats, error)
	// SyncIdeaTotalScore recomputes the idea's score and stores it as the
	// idea's total_score snapshot.
	SyncIdeaTotalScore(dbc dbctx.Context, ideaID uuid.UUID) (*IdeaScoreResult, error)
}

type scoringService struct {
	db           *gorm.DB
	log          *logger.Logger
	obs          opObserver
	metrics      *observability.Metrics
	cfg          ScoringConfig
	ideaRepo     repos.IdeaRepo
	scoreRepo    repos.ScoreRepo
	criteriaRepo repos.CriteriaRepo
	activity     ActivityService
}

func NewScoringService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	cfg ScoringConfig,
	ideaRepo repos.IdeaRepo,
	scoreRepo repos.ScoreRepo,
	criteriaRepo repos.CriteriaRepo,
	activity ActivityService,
) ScoringService {
	serviceLog := log.With("service", "ScoringService")
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultRankConcurrency
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultRankLimit
	}
	return &scoringService{
		db:           db,
		log:          serviceLog,
		obs:          opObserver{log: serviceLog, metrics: metrics},
		metrics:      metrics,
		cfg:          cfg,
		ideaRepo:     ideaRepo,
		scoreRepo:    scoreRepo,
		criteriaRepo: criteriaRepo,
		activity:     activity,
	}
}

func (s *scoringService) CalculateIdeaScore(dbc dbctx.Context, ideaID uuid.UUID) (out *IdeaScoreResult, err error) {
	const op = "scoring.calculate"
	ctx, span := observability.StartSpan(dbc.Ctx, op, attribute.String("idea_id", ideaID.String()))
	dbc = dbctx.Context{Ctx: ctx, Tx: dbc.Tx}
	defer func(started time.Time) {
		observability.EndSpan(span, err)
		s.obs.done(ctx, op, started, err, "idea_id", ideaID)
	}(time.Now())

	idea, err := s.ideaRepo.GetByID(dbc, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, types.NotFound(op, "idea %s not found", ideaID)
	}
	out, err = s.compute(dbc, ideaID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Float64("final_score", out.FinalScore), attribute.Int("scores_count", out.ScoresCount))
	s.metrics.ObserveFinalScore(out.FinalScore)
	return out, nil
}

// compute loads every score on the idea and joins it to its criterion.
// Scores whose criterion no longer exists are skipped.
func (s *scoringService) compute(dbc dbctx.Context, ideaID uuid.UUID) (*IdeaScoreResult, error) {
	scores, err := s.scoreRepo.ListByIdeaID(dbc, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	criteriaIDs := make([]uuid.UUID, 0, len(scores))
	seen := make(map[uuid.UUID]struct{}, len(scores))
	for _, sc := range scores {
		if _, ok := seen[sc.CriteriaID]; ok {
			continue
		}
		seen[sc.CriteriaID] = struct{}{}
		criteriaIDs = append(criteriaIDs, sc.CriteriaID)
	}
	criteria, err := s.criteriaRepo.GetByIDs(dbc, criteriaIDs)
	if err != nil {
		return nil, fmt.Errorf("load criteria: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Criterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}
	return weightedAverage(ideaID, scores, byID), nil
}

func weightedAverage(ideaID uuid.UUID, scores []*types.Score, criteria map[uuid.UUID]*types.Criterion) *IdeaScoreResult {
	res := &IdeaScoreResult{
		IdeaID:         ideaID,
		CriteriaScores: make([]CriterionScore, 0, len(scores)),
	}
	for _, sc := range scores {
		c := criteria[sc.CriteriaID]
		if c == nil {
			continue
		}
		contribution := sc.Value * c.Weight
		res.WeightedScore += contribution
		res.TotalWeight += c.Weight
		res.CriteriaScores = append(res.CriteriaScores, CriterionScore{
			Score:         sc,
			Criterion:     c,
			WeightedScore: contribution,
		})
	}
	res.ScoresCount = len(res.CriteriaScores)
	if res.TotalWeight > 0 {
		res.FinalScore = float64(res.WeightedScore) / float64(res.TotalWeight)
	}
	return res
}

func (s *scoringService) RankIdeasByUser(dbc dbctx.Context, userID uuid.UUID, limit int) (out []*RankedIdea, err error) {
	const op = "scoring.rank"
	ctx, span := observability.StartSpan(dbc.Ctx, op, attribute.Int("limit", limit))
	dbc = dbctx.Context{Ctx: ctx, Tx: dbc.Tx}
	defer func(started time.Time) {
		observability.EndSpan(span, err)
		s.obs.done(ctx, op, started, err, "user_id", userID, "limit", limit)
	}(time.Now())

	if err := requireID(op, "user_id", userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	ideas, err := s.ideaRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}

	ranked := make([]*RankedIdea, len(ideas))
	g, gctx := errgroup.WithContext(ctx)
	conc := s.cfg.Concurrency
	if dbc.Tx != nil {
		// A gorm transaction is one connection; queries on it must not overlap.
		conc = 1
	}
	g.SetLimit(conc)
	for i, idea := range ideas {
		g.Go(func() error {
			res, err := s.compute(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, idea.ID)
			if err != nil {
				return fmt.Errorf("score idea %s: %w", idea.ID, err)
			}
			ranked[i] = &RankedIdea{
				Idea:        idea,
				FinalScore:  res.FinalScore,
				TotalWeight: res.TotalWeight,
				ScoresCount: res.ScoresCount,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Ideas arrive oldest first, so equal scores keep creation order.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].FinalScore > ranked[b].FinalScore
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i, r := range ranked {
		r.Rank = i + 1
	}
	span.SetAttributes(attribute.Int("ideas", len(ideas)), attribute.Int("ranked", len(ranked)))
	s.metrics.ObserveRankedIdeas(len(ideas))
	return ranked, nil
}

func (s *scoringService) StatsByUser(dbc dbctx.Context, userID uuid.UUID) (out *ScoreStats, err error) {
	const op = "scoring.stats"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "user_id", userID)
	}(time.Now())

	if err := requireID(op, "user_id", userID); err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return summarize(scores), nil
}

func summarize(scores []*types.Score) *ScoreStats {
	st := &ScoreStats{Distribution: make(map[int]int, types.MaxScore-types.MinScore+1)}
	for v := types.MinScore; v <= types.MaxScore; v++ {
		st.Distribution[v] = 0
	}
	if len(scores) == 0 {
		return st
	}
	sum := 0
	st.Min, st.Max = math.MaxInt, math.MinInt
	for _, sc := range scores {
		sum += sc.Value
		st.Min = min(st.Min, sc.Value)
		st.Max = max(st.Max, sc.Value)
		if _, ok := st.Distribution[sc.Value]; ok {
			st.Distribution[sc.Value]++
		}
	}
	st.Count = len(scores)
	st.Average = float64(sum) / float64(st.Count)
	return st
}

func (s *scoringService) SyncIdeaTotalScore(dbc dbctx.Context, ideaID uuid.UUID) (out *IdeaScoreResult, err error) {
	const op = "scoring.sync_total"
	defer func(started time.Time) {
		s.obs.done(dbc.Ctx, op, started, err, "idea_id", ideaID)
	}(time.Now())

	var owner uuid.UUID
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		idea, err := s.ideaRepo.GetByID(inner, ideaID)
		if err != nil {
			return fmt.Errorf("load idea: %w", err)
		}
		if idea == nil {
			return types.NotFound(op, "idea %s not found", ideaID)
		}
		if err := requireOwner(inner.Ctx, op, idea.UserID); err != nil {
			return err
		}
		owner = idea.UserID
		res, err := s.compute(inner, ideaID)
		if err != nil {
			return err
		}
		if err := s.ideaRepo.UpdateFields(inner, ideaID, map[string]any{"total_score": res.FinalScore}); err != nil {
			return fmt.Errorf("store total score: %w", err)
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(dbc, ActivityEntry{
		EntityType:  types.EntityIdea,
		EntityID:    ideaID,
		ActionType:  types.ActionUpdated,
		Description: fmt.Sprintf("Synced total score %.2f", out.FinalScore),
		UserID:      owner,
		Metadata:    map[string]any{"total_score": out.FinalScore, "scores_count": out.ScoresCount},
	})
	return out, nil
}
