package ideas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
)

func TestIdeaComparisonRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewIdeaComparisonRepo(db, testutil.Logger(t))

	user := uuid.New()
	a, b := uuid.New(), uuid.New()
	cmp := &types.IdeaComparison{
		UserID:  user,
		Name:    "shortlist",
		IdeaIDs: datatypes.JSONSlice[uuid.UUID]{b, a},
	}
	if _, err := repo.Create(dbc, []*types.IdeaComparison{cmp}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, cmp.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if len(got.IdeaIDs) != 2 || got.IdeaIDs[0] != b || got.IdeaIDs[1] != a {
		t.Fatalf("GetByID: idea order not preserved: %v", got.IdeaIDs)
	}

	if rows, err := repo.ListByUserID(dbc, user); err != nil || len(rows) != 1 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(rows))
	}

	if err := repo.FullDeleteByIDs(dbc, []uuid.UUID{cmp.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if got, err := repo.GetByID(dbc, cmp.ID); err != nil || got != nil {
		t.Fatalf("after FullDeleteByIDs: got=%v err=%v", got, err)
	}
}
