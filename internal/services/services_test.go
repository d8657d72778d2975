package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/keylock"
)

type harness struct {
	db          *gorm.DB
	ctx         context.Context
	user        uuid.UUID
	metrics     *observability.Metrics
	criteriaRep repos.CriteriaRepo
	scoreRep    repos.ScoreRepo
	ideaRep     repos.IdeaRepo
	activity    ActivityService
	ideas       IdeaService
	criteria    CriteriaService
	scores      ScoreService
	scoring     ScoringService
	comparisons ComparisonService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	criteriaRepo := repos.NewCriteriaRepo(db, log)
	scoreRepo := repos.NewScoreRepo(db, log)
	ideaRepo := repos.NewIdeaRepo(db, log)
	comparisonRepo := repos.NewIdeaComparisonRepo(db, log)
	activityRepo := repos.NewActivityRepo(db, log)

	activity := NewActivityService(log, activityRepo)
	scoring := NewScoringService(db, log, metrics, ScoringConfig{Concurrency: 3}, ideaRepo, scoreRepo, criteriaRepo, activity)
	user := uuid.New()
	return &harness{
		db:          db,
		ctx:         ctxutil.WithPrincipal(context.Background(), user),
		user:        user,
		metrics:     metrics,
		criteriaRep: criteriaRepo,
		scoreRep:    scoreRepo,
		ideaRep:     ideaRepo,
		activity:    activity,
		ideas:       NewIdeaService(log, metrics, ideaRepo, activity),
		criteria:    NewCriteriaService(db, log, metrics, criteriaRepo, scoreRepo, activity),
		scores:      NewScoreService(db, log, metrics, keylock.NewLocal(), scoreRepo, criteriaRepo, ideaRepo, activity),
		scoring:     scoring,
		comparisons: NewComparisonService(log, metrics, 2, comparisonRepo, ideaRepo, scoring, activity),
	}
}

// dbc returns a context acting as the harness user.
func (h *harness) dbc() dbctx.Context {
	return dbctx.Context{Ctx: h.ctx}
}

// as returns a context acting as userID.
func (h *harness) as(userID uuid.UUID) dbctx.Context {
	return dbctx.Context{Ctx: ctxutil.WithPrincipal(context.Background(), userID)}
}

func (h *harness) idea(t *testing.T, title string) uuid.UUID {
	t.Helper()
	idea, err := h.ideas.Create(h.dbc(), CreateIdeaInput{UserID: h.user, Title: title})
	if err != nil {
		t.Fatalf("create idea %q: %v", title, err)
	}
	return idea.ID
}

func (h *harness) criterion(t *testing.T, name string, weight int) uuid.UUID {
	t.Helper()
	c, err := h.criteria.Create(h.dbc(), CreateCriterionInput{UserID: h.user, Name: name, Weight: weight})
	if err != nil {
		t.Fatalf("create criterion %q: %v", name, err)
	}
	return c.ID
}

func (h *harness) score(t *testing.T, ideaID, criteriaID uuid.UUID, value int) *UpsertResult {
	t.Helper()
	res, err := h.scores.Upsert(h.dbc(), UpsertScoreInput{IdeaID: ideaID, CriteriaID: criteriaID, UserID: h.user, Score: value})
	if err != nil {
		t.Fatalf("upsert score: %v", err)
	}
	return res
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
