package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ideascore-backend/internal/domain"
)

func TestCalculateIdeaScoreWeightedAverage(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "widget")
	a := h.criterion(t, "A", 8)
	b := h.criterion(t, "B", 9)
	h.score(t, idea, a, 8)
	h.score(t, idea, b, 9)

	res, err := h.scoring.CalculateIdeaScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("CalculateIdeaScore: %v", err)
	}
	if !approx(res.FinalScore, 145.0/17.0) {
		t.Fatalf("final score: want=%v got=%v", 145.0/17.0, res.FinalScore)
	}
	if res.TotalWeight != 17 || res.WeightedScore != 145 || res.ScoresCount != 2 {
		t.Fatalf("aggregates: total_weight=%d weighted=%d count=%d", res.TotalWeight, res.WeightedScore, res.ScoresCount)
	}
	if len(res.CriteriaScores) != 2 || res.CriteriaScores[0].WeightedScore != 64 || res.CriteriaScores[0].Criterion.ID != a {
		t.Fatalf("criteria scores: %+v", res.CriteriaScores)
	}
}

func TestCalculateIdeaScoreEmptyAndMissing(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "empty")

	res, err := h.scoring.CalculateIdeaScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("CalculateIdeaScore: %v", err)
	}
	if res.FinalScore != 0 || res.ScoresCount != 0 || res.TotalWeight != 0 {
		t.Fatalf("empty idea: want zero result, got %+v", res)
	}

	if _, err := h.scoring.CalculateIdeaScore(h.dbc(), uuid.New()); !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("missing idea: want not_found got %v", err)
	}
}

func TestCalculateIdeaScoreSkipsOrphansAndZeroWeight(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "legacy")
	live := h.criterion(t, "live", 5)
	h.score(t, idea, live, 6)

	// Rows written outside the service: an orphan score and a weight-0 criterion.
	zero := testutil.SeedCriterion(t, h.ctx, h.db, h.user, "zero", 0, 9)
	testutil.SeedScore(t, h.ctx, h.db, idea, zero.ID, h.user, 10)
	testutil.SeedScore(t, h.ctx, h.db, idea, uuid.New(), h.user, 1)

	res, err := h.scoring.CalculateIdeaScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("CalculateIdeaScore: %v", err)
	}
	if !approx(res.FinalScore, 6) {
		t.Fatalf("final score: want=6 got=%v", res.FinalScore)
	}
	if res.ScoresCount != 2 || res.TotalWeight != 5 {
		t.Fatalf("orphan should be skipped and zero weight kept: count=%d total_weight=%d", res.ScoresCount, res.TotalWeight)
	}
}

func TestDeleteCriterionRecomputes(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "X")
	market := h.criterion(t, "Market Size", 8)
	feas := h.criterion(t, "Feasibility", 4)
	h.score(t, idea, market, 9)
	h.score(t, idea, feas, 5)

	res, err := h.scoring.CalculateIdeaScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("CalculateIdeaScore: %v", err)
	}
	if !approx(res.FinalScore, 92.0/12.0) {
		t.Fatalf("before delete: want=%v got=%v", 92.0/12.0, res.FinalScore)
	}

	n, err := h.criteria.Delete(h.dbc(), feas)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted scores: want=1 got=%d", n)
	}
	if rows, _ := h.scores.ListByCriteria(h.dbc(), feas); len(rows) != 0 {
		t.Fatalf("scores still reference deleted criterion: %d", len(rows))
	}

	res, err = h.scoring.CalculateIdeaScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("CalculateIdeaScore: %v", err)
	}
	if !approx(res.FinalScore, 9) || res.ScoresCount != 1 {
		t.Fatalf("after delete: want=9 got=%v (count=%d)", res.FinalScore, res.ScoresCount)
	}
}

func TestRankIdeasByUser(t *testing.T) {
	h := newHarness(t)
	// Equal weights, so final scores are 8.5, 3.0 and 6.0.
	c := h.criterion(t, "first", 5)
	c2 := h.criterion(t, "second", 5)
	top := h.idea(t, "top")
	low := h.idea(t, "low")
	mid := h.idea(t, "mid")
	h.score(t, top, c, 8)
	h.score(t, top, c2, 9)
	h.score(t, low, c, 3)
	h.score(t, low, c2, 3)
	h.score(t, mid, c, 6)
	h.score(t, mid, c2, 6)

	ranked, err := h.scoring.RankIdeasByUser(h.dbc(), h.user, 2)
	if err != nil {
		t.Fatalf("RankIdeasByUser: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("limit: want=2 got=%d", len(ranked))
	}
	if ranked[0].Idea.ID != top || ranked[1].Idea.ID != mid {
		t.Fatalf("order: got %s, %s", ranked[0].Idea.Title, ranked[1].Idea.Title)
	}
	if !approx(ranked[0].FinalScore, 8.5) || ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Fatalf("ranked values: %+v %+v", ranked[0], ranked[1])
	}
}

func TestRankIdeasByUserTiesKeepCreationOrder(t *testing.T) {
	h := newHarness(t)
	c := h.criterion(t, "only", 5)
	first := h.idea(t, "first")
	second := h.idea(t, "second")
	third := h.idea(t, "third")
	h.score(t, third, c, 7)
	h.score(t, second, c, 7)
	h.score(t, first, c, 7)
	unscored := h.idea(t, "unscored")

	ranked, err := h.scoring.RankIdeasByUser(h.dbc(), h.user, 0)
	if err != nil {
		t.Fatalf("RankIdeasByUser: %v", err)
	}
	want := []uuid.UUID{first, second, third, unscored}
	if len(ranked) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].Idea.ID != id {
			t.Fatalf("position %d: want=%s got=%s", i, id, ranked[i].Idea.ID)
		}
	}
}

func TestRankIdeasByUserDefaultLimit(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < DefaultRankLimit+3; i++ {
		testutil.SeedIdea(t, h.ctx, h.db, h.user, "idea")
	}
	ranked, err := h.scoring.RankIdeasByUser(h.dbc(), h.user, 0)
	if err != nil {
		t.Fatalf("RankIdeasByUser: %v", err)
	}
	if len(ranked) != DefaultRankLimit {
		t.Fatalf("default limit: want=%d got=%d", DefaultRankLimit, len(ranked))
	}
}

func TestStatsByUser(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "stats")
	a := h.criterion(t, "a", 5)
	b := h.criterion(t, "b", 5)
	h.score(t, idea, a, 4)
	h.score(t, idea, b, 10)
	// Legacy out-of-range value.
	testutil.SeedScore(t, h.ctx, h.db, idea, uuid.New(), h.user, 12)

	st, err := h.scoring.StatsByUser(h.dbc(), h.user)
	if err != nil {
		t.Fatalf("StatsByUser: %v", err)
	}
	if st.Count != 3 || st.Min != 4 || st.Max != 12 || !approx(st.Average, 26.0/3.0) {
		t.Fatalf("stats: %+v", st)
	}
	if len(st.Distribution) != 10 || st.Distribution[4] != 1 || st.Distribution[10] != 1 || st.Distribution[1] != 0 {
		t.Fatalf("distribution: %v", st.Distribution)
	}
	if _, ok := st.Distribution[12]; ok {
		t.Fatalf("out-of-range bucket should be absent")
	}

	empty, err := h.scoring.StatsByUser(h.dbc(), uuid.New())
	if err != nil {
		t.Fatalf("StatsByUser empty: %v", err)
	}
	if empty.Count != 0 || empty.Average != 0 || empty.Min != 0 || empty.Max != 0 {
		t.Fatalf("empty stats: %+v", empty)
	}
}

func TestSyncIdeaTotalScore(t *testing.T) {
	h := newHarness(t)
	idea := h.idea(t, "sync")
	c := h.criterion(t, "c", 3)
	h.score(t, idea, c, 7)

	res, err := h.scoring.SyncIdeaTotalScore(h.dbc(), idea)
	if err != nil {
		t.Fatalf("SyncIdeaTotalScore: %v", err)
	}
	got, err := h.ideas.Get(h.dbc(), idea)
	if err != nil {
		t.Fatalf("Get idea: %v", err)
	}
	if got.TotalScore == nil || !approx(*got.TotalScore, res.FinalScore) {
		t.Fatalf("total score snapshot: want=%v got=%v", res.FinalScore, got.TotalScore)
	}

	if _, err := h.scoring.SyncIdeaTotalScore(h.as(uuid.New()), idea); !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("foreign sync: want authorization got %v", err)
	}
}
