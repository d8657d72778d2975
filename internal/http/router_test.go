package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/data/repos"
	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	"github.com/yungbote/ideascore-backend/internal/http/handlers"
	"github.com/yungbote/ideascore-backend/internal/http/middleware"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/keylock"
	"github.com/yungbote/ideascore-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	criteriaRepo := repos.NewCriteriaRepo(db, log)
	scoreRepo := repos.NewScoreRepo(db, log)
	ideaRepo := repos.NewIdeaRepo(db, log)
	activity := services.NewActivityService(log, repos.NewActivityRepo(db, log))
	scoring := services.NewScoringService(db, log, metrics, services.ScoringConfig{Concurrency: 2}, ideaRepo, scoreRepo, criteriaRepo, activity)

	return NewRouter(RouterConfig{
		Log:             log,
		Metrics:         metrics,
		HealthHandler:   handlers.NewHealthHandler(db),
		IdeaHandler:     handlers.NewIdeaHandler(log, services.NewIdeaService(log, metrics, ideaRepo, activity), activity),
		CriteriaHandler: handlers.NewCriteriaHandler(log, services.NewCriteriaService(db, log, metrics, criteriaRepo, scoreRepo, activity)),
		ScoreHandler:    handlers.NewScoreHandler(log, services.NewScoreService(db, log, metrics, keylock.NewLocal(), scoreRepo, criteriaRepo, ideaRepo, activity)),
		ScoringHandler:  handlers.NewScoringHandler(log, scoring),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, user uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set(middleware.HeaderUserID, user.String())
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

type idResp struct {
	ID uuid.UUID `json:"id"`
}

func TestRouterScoreFlow(t *testing.T) {
	r := newTestRouter(t)
	user := uuid.New()

	rec := doJSON(t, r, nethttp.MethodPost, "/api/ideas", user, map[string]any{"title": "Solar kiosks"})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create idea: status=%d body=%s", rec.Code, rec.Body.String())
	}
	idea := decode[struct {
		Idea idResp `json:"idea"`
	}](t, rec).Idea

	rec = doJSON(t, r, nethttp.MethodPost, "/api/criteria", user, map[string]any{"name": "Impact", "weight": 5, "order": 1})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create criterion: status=%d body=%s", rec.Code, rec.Body.String())
	}
	crit := decode[struct {
		Criterion idResp `json:"criterion"`
	}](t, rec).Criterion

	upsert := map[string]any{"idea_id": idea.ID, "criteria_id": crit.ID, "score": 8}
	if rec = doJSON(t, r, nethttp.MethodPut, "/api/scores", user, upsert); rec.Code != nethttp.StatusCreated {
		t.Fatalf("first upsert: status=%d body=%s", rec.Code, rec.Body.String())
	}
	upsert["score"] = 6
	if rec = doJSON(t, r, nethttp.MethodPut, "/api/scores", user, upsert); rec.Code != nethttp.StatusOK {
		t.Fatalf("second upsert: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, nethttp.MethodGet, "/api/ideas/"+idea.ID.String()+"/score", user, nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("idea score: status=%d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[services.IdeaScoreResult](t, rec)
	if res.FinalScore != 6 || res.TotalWeight != 5 || res.ScoresCount != 1 {
		t.Fatalf("idea score: %+v", res)
	}

	rec = doJSON(t, r, nethttp.MethodGet, "/api/users/"+user.String()+"/ranking", user, nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("ranking: status=%d", rec.Code)
	}
	ranking := decode[struct {
		Ideas []services.RankedIdea `json:"ideas"`
	}](t, rec)
	if len(ranking.Ideas) != 1 || ranking.Ideas[0].Rank != 1 {
		t.Fatalf("ranking: %+v", ranking)
	}
}

func TestRouterErrorMapping(t *testing.T) {
	r := newTestRouter(t)
	user := uuid.New()

	cases := []struct {
		name   string
		method string
		path   string
		user   uuid.UUID
		body   any
		status int
		code   string
	}{
		{"bad path id", nethttp.MethodGet, "/api/ideas/nope/score", user, nil, nethttp.StatusBadRequest, "validation"},
		{"missing idea", nethttp.MethodGet, "/api/ideas/" + uuid.NewString() + "/score", user, nil, nethttp.StatusNotFound, "not_found"},
		{"weight out of range", nethttp.MethodPost, "/api/criteria", user, map[string]any{"name": "Heavy", "weight": 11}, nethttp.StatusBadRequest, "validation"},
		{"acting for someone else", nethttp.MethodPost, "/api/criteria", user, map[string]any{"user_id": uuid.New(), "name": "x", "weight": 3}, nethttp.StatusForbidden, "authorization"},
		{"anonymous write", nethttp.MethodPost, "/api/ideas", uuid.Nil, map[string]any{"user_id": uuid.New(), "title": "x"}, nethttp.StatusForbidden, "authorization"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, tc.method, tc.path, tc.user, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			env := decode[struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}](t, rec)
			if env.Error.Code != tc.code {
				t.Fatalf("code: got=%q want=%q", env.Error.Code, tc.code)
			}
		})
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, nethttp.MethodGet, "/healthcheck", uuid.Nil, nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("healthcheck: status=%d", rec.Code)
	}
	_ = doJSON(t, r, nethttp.MethodGet, "/api/ideas/"+uuid.NewString()+"/score", uuid.New(), nil)

	rec = doJSON(t, r, nethttp.MethodGet, "/metrics", uuid.Nil, nil)
	if rec.Code != nethttp.StatusOK || !strings.Contains(rec.Body.String(), "ideascore_operations_total") {
		t.Fatalf("metrics: status=%d", rec.Code)
	}
}
