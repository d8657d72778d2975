package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

// requireOwner fails unless the principal on ctx is owner.
func requireOwner(ctx context.Context, op string, owner uuid.UUID) error {
	principal := ctxutil.PrincipalID(ctx)
	if principal == uuid.Nil {
		return types.Unauthorized(op, "no principal on request")
	}
	if principal != owner {
		return types.Unauthorized(op, "principal does not own this resource")
	}
	return nil
}

func validateWeight(op string, weight int) error {
	if weight < types.MinWeight || weight > types.MaxWeight {
		return types.Validation(op, "weight must be between %d and %d, got %d", types.MinWeight, types.MaxWeight, weight)
	}
	return nil
}

func validateScore(op string, score int) error {
	if score < types.MinScore || score > types.MaxScore {
		return types.Validation(op, "score must be between %d and %d, got %d", types.MinScore, types.MaxScore, score)
	}
	return nil
}

func validateName(op, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return types.Validation(op, "%s is required", field)
	}
	return nil
}

func requireID(op, field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return types.Validation(op, "%s is required", field)
	}
	return nil
}

// inTx runs fn inside the caller's transaction, or a new one when dbc has none.
func inTx(dbc dbctx.Context, db *gorm.DB, fn func(inner dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}

// opObserver records latency and outcome for a service operation and logs
// failures with the acting user and the call arguments.
type opObserver struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

func (o opObserver) done(ctx context.Context, op string, started time.Time, err error, args ...any) {
	o.metrics.ObserveOp(op, started, err)
	if err == nil {
		return
	}
	kv := make([]any, 0, len(args)+6)
	kv = append(kv, "op", op, "principal", ctxutil.PrincipalID(ctx).String(), "error", err)
	kv = append(kv, args...)
	if types.CodeOf(err) == "" {
		o.log.Error("Operation failed", kv...)
		return
	}
	o.log.Warn("Operation failed", kv...)
}

func ptrString(s string) *string { return &s }

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
