package scoring

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
)

func TestCriteriaRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCriteriaRepo(db, testutil.Logger(t))

	user := uuid.New()
	other := uuid.New()

	c1 := &types.Criterion{UserID: user, Name: "Revenue", Weight: 9, Order: 2}
	c2 := &types.Criterion{UserID: user, Name: "Market", Weight: 8, Order: 1}
	c3 := &types.Criterion{UserID: other, Name: "Fit", Weight: 7, Order: 1, IsDefault: true}
	if _, err := repo.Create(dbc, []*types.Criterion{c1, c2, c3}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c1.ID == uuid.Nil || c1.CreatedAt.IsZero() {
		t.Fatalf("Create: expected id and timestamps to be assigned")
	}

	if got, err := repo.GetByID(dbc, c1.ID); err != nil || got == nil || got.Name != "Revenue" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByID(dbc, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByID missing: got=%v err=%v", got, err)
	}
	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{c1.ID, c3.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	rows, err := repo.ListByUserID(dbc, user)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(rows))
	}
	if rows[0].ID != c2.ID || rows[1].ID != c1.ID {
		t.Fatalf("ListByUserID: expected sort_order ordering, got %s,%s", rows[0].Name, rows[1].Name)
	}

	if rows, err := repo.ListDefaults(dbc); err != nil || len(rows) != 1 || rows[0].ID != c3.ID {
		t.Fatalf("ListDefaults: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(dbc, c1.ID, map[string]any{"weight": 3}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, c1.ID); got == nil || got.Weight != 3 {
		t.Fatalf("UpdateFields: weight not applied: %+v", got)
	}

	if err := repo.FullDeleteByIDs(dbc, []uuid.UUID{c1.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if got, err := repo.GetByID(dbc, c1.ID); err != nil || got != nil {
		t.Fatalf("after FullDeleteByIDs: got=%v err=%v", got, err)
	}
}
