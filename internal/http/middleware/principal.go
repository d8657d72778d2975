package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/http/response"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
)

// HeaderUserID carries the principal resolved by the upstream gateway.
const HeaderUserID = "X-User-Id"

// AttachPrincipal copies the gateway-supplied user id onto the request
// context. Requests without the header continue anonymously; ownership
// checks in the services reject anonymous mutations.
func AttachPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("malformed "+HeaderUserID+" header"))
			c.Abort()
			return
		}
		ctx := ctxutil.WithPrincipal(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
