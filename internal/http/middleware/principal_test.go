package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
)

func TestAttachPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := uuid.New()

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   uuid.UUID
	}{
		{"valid", user.String(), http.StatusOK, user},
		{"absent", "", http.StatusOK, uuid.Nil},
		{"malformed", "not-a-uuid", http.StatusBadRequest, uuid.Nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen uuid.UUID
			r := gin.New()
			r.Use(AttachPrincipal())
			r.GET("/probe", func(c *gin.Context) {
				seen = ctxutil.PrincipalID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set(HeaderUserID, tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			if seen != tc.wantUser {
				t.Fatalf("principal: got=%s want=%s", seen, tc.wantUser)
			}
		})
	}
}

func TestAttachTraceContextEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/probe", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil || td.RequestID != "req-1" || td.TraceID == "" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("trace data not attached: status=%d", rec.Code)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "req-1" {
		t.Fatalf("request id header: got=%q", got)
	}
}

func TestAttachTraceContextRejectsJunkIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderRequestID, "bad id\twith spaces")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected generated request id, got=%q", got)
	}
	if trace := rec.Header().Get(HeaderTraceID); trace != got {
		t.Fatalf("trace id should fall back to request id: trace=%q req=%q", trace, got)
	}
}
