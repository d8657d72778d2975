package activity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
)

func TestActivityRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewActivityRepo(db, testutil.Logger(t))

	user := uuid.New()
	entity := uuid.New()
	rows := []*types.Activity{
		{EntityType: types.EntityCriterion, EntityID: entity, ActionType: types.ActionCreated, Description: "Created criterion", UserID: user},
		{EntityType: types.EntityCriterion, EntityID: entity, ActionType: types.ActionUpdated, Description: "Updated criterion", UserID: user, Metadata: datatypes.JSON([]byte(`{"weight":5}`))},
		{EntityType: types.EntityScore, EntityID: uuid.New(), ActionType: types.ActionScored, UserID: user},
	}
	if _, err := repo.Create(dbc, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if string(rows[0].Metadata) != "{}" {
		t.Fatalf("Create: expected empty metadata object, got %s", rows[0].Metadata)
	}

	got, err := repo.ListByEntity(dbc, types.EntityCriterion, entity)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByEntity: err=%v len=%d", err, len(got))
	}
	if got[0].ActionType != types.ActionCreated {
		t.Fatalf("ListByEntity: expected oldest first, got %s", got[0].ActionType)
	}

	if got, err := repo.ListByUserID(dbc, user, 2); err != nil || len(got) != 2 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(got))
	}
	if got, err := repo.ListByUserID(dbc, uuid.New(), 0); err != nil || len(got) != 0 {
		t.Fatalf("ListByUserID other: err=%v len=%d", err, len(got))
	}
}
