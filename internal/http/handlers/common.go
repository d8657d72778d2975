package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/apierr"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// respondServiceError maps a service error onto the HTTP error envelope.
func respondServiceError(c *gin.Context, log *logger.Logger, op string, err error) {
	ae := apierr.FromError(err)
	if ae.Status >= 500 {
		log.Error(op+" failed", "error", err)
	}
	_ = c.Error(err)
	response.RespondError(c, ae.Status, ae.Code, ae.Err)
}

func respondBadRequest(c *gin.Context, op string, format string, args ...any) {
	err := types.Validation(op, format, args...)
	response.RespondError(c, http.StatusBadRequest, string(types.CodeValidation), err)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		respondBadRequest(c, "path", "invalid %s", name)
		return uuid.Nil, false
	}
	return id, true
}

// queryUserID reads ?user_id=, falling back to the request principal.
func queryUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query("user_id"))
	if raw == "" {
		if id := ctxutil.PrincipalID(c.Request.Context()); id != uuid.Nil {
			return id, true
		}
		respondBadRequest(c, "query", "user_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		respondBadRequest(c, "query", "invalid user_id")
		return uuid.Nil, false
	}
	return id, true
}

// bodyUserID returns id, or the request principal when id is nil.
func bodyUserID(c *gin.Context, id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	return ctxutil.PrincipalID(c.Request.Context())
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "query", "invalid %s", name)
		return 0, false
	}
	return v, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "body", "invalid request body: %v", err)
		return false
	}
	return true
}
