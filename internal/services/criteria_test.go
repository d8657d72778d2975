package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/ideascore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
)

func TestSeedDefaults(t *testing.T) {
	h := newHarness(t)
	rows, err := h.criteria.SeedDefaults(h.dbc(), h.user)
	if err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("seeded: want=8 got=%d", len(rows))
	}

	listed, err := h.criteria.ListByUser(h.dbc(), h.user)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	wantWeights := []int{8, 7, 6, 9, 5, 6, 8, 7}
	if len(listed) != len(wantWeights) {
		t.Fatalf("listed: want=%d got=%d", len(wantWeights), len(listed))
	}
	for i, c := range listed {
		if c.Order != i+1 || c.Weight != wantWeights[i] || c.UserID != h.user || c.IsDefault {
			t.Fatalf("criterion %d: order=%d weight=%d default=%v", i, c.Order, c.Weight, c.IsDefault)
		}
	}
	if listed[0].Name != "Market Size" || listed[7].Name != "Strategic Fit" {
		t.Fatalf("catalog names: first=%q last=%q", listed[0].Name, listed[7].Name)
	}

	defaults, err := h.criteria.ListDefaults(h.dbc())
	if err != nil {
		t.Fatalf("ListDefaults: %v", err)
	}
	if len(defaults) != 0 {
		t.Fatalf("seeded rows must not appear as global defaults, got %d", len(defaults))
	}
}

func TestCreateCriterionValidation(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		name string
		in   CreateCriterionInput
		code types.ErrorCode
	}{
		{"weight too high", CreateCriterionInput{UserID: h.user, Name: "x", Weight: 11}, types.CodeValidation},
		{"weight zero", CreateCriterionInput{UserID: h.user, Name: "x", Weight: 0}, types.CodeValidation},
		{"blank name", CreateCriterionInput{UserID: h.user, Name: "  ", Weight: 5}, types.CodeValidation},
		{"other owner", CreateCriterionInput{UserID: uuid.New(), Name: "x", Weight: 5}, types.CodeAuthorization},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.criteria.Create(h.dbc(), tc.in)
			if !types.IsCode(err, tc.code) {
				t.Fatalf("want %s got %v", tc.code, err)
			}
		})
	}

	_, err := h.criteria.Create(dbctx.Context{Ctx: context.Background()}, CreateCriterionInput{UserID: h.user, Name: "x", Weight: 5})
	if !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("missing principal: want authorization got %v", err)
	}
}

func TestUpdateCriterionPatchesOnlySuppliedFields(t *testing.T) {
	h := newHarness(t)
	created, err := h.criteria.Create(h.dbc(), CreateCriterionInput{
		UserID:      h.user,
		Name:        "Reach",
		Description: testutil.PtrString("how many"),
		Weight:      4,
		Order:       3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	weight := 9
	updated, err := h.criteria.Update(h.dbc(), created.ID, CriterionPatch{Weight: &weight})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Weight != 9 || updated.Name != "Reach" || updated.Order != 3 || updated.Description == nil || *updated.Description != "how many" {
		t.Fatalf("patch touched other fields: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updated_at went backwards")
	}

	bad := 0
	if _, err := h.criteria.Update(h.dbc(), created.ID, CriterionPatch{Weight: &bad}); !types.IsCode(err, types.CodeValidation) {
		t.Fatalf("invalid weight: want validation got %v", err)
	}
	if _, err := h.criteria.Update(h.as(uuid.New()), created.ID, CriterionPatch{Weight: &weight}); !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("foreign update: want authorization got %v", err)
	}
	if _, err := h.criteria.Update(h.dbc(), uuid.New(), CriterionPatch{Weight: &weight}); !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("missing criterion: want not_found got %v", err)
	}
}

func TestReorderIsAtomic(t *testing.T) {
	h := newHarness(t)
	a := h.criterion(t, "a", 5)
	b := h.criterion(t, "b", 5)

	err := h.criteria.Reorder(h.dbc(), []OrderUpdate{{CriteriaID: a, Order: 7}, {CriteriaID: uuid.New(), Order: 1}})
	if !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("Reorder with unknown id: want not_found got %v", err)
	}
	got, _ := h.criteria.Get(h.dbc(), a)
	if got.Order != 0 {
		t.Fatalf("partial reorder was applied: order=%d", got.Order)
	}

	if err := h.criteria.Reorder(h.dbc(), []OrderUpdate{{CriteriaID: a, Order: 2}, {CriteriaID: b, Order: 1}}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	listed, _ := h.criteria.ListByUser(h.dbc(), h.user)
	if len(listed) != 2 || listed[0].ID != b || listed[1].ID != a {
		t.Fatalf("order after Reorder is wrong")
	}

	if err := h.criteria.Reorder(h.as(uuid.New()), []OrderUpdate{{CriteriaID: a, Order: 1}}); !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("foreign reorder: want authorization got %v", err)
	}
}

func TestDeleteCriterionRequiresOwner(t *testing.T) {
	h := newHarness(t)
	c := h.criterion(t, "mine", 5)
	if _, err := h.criteria.Delete(h.as(uuid.New()), c); !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("foreign delete: want authorization got %v", err)
	}
	if _, err := h.criteria.Get(h.dbc(), c); err != nil {
		t.Fatalf("criterion should survive a rejected delete: %v", err)
	}
	if _, err := h.criteria.Delete(h.dbc(), uuid.New()); !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("missing delete: want not_found got %v", err)
	}
}

func TestDuplicateAndCopyAll(t *testing.T) {
	h := newHarness(t)
	source, err := h.criteria.Create(h.dbc(), CreateCriterionInput{UserID: h.user, Name: "Global", Weight: 6, IsDefault: true, Order: 4})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h.criterion(t, "Second", 3)

	target := uuid.New()
	dup, err := h.criteria.Duplicate(h.as(target), source.ID, target)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == source.ID || dup.UserID != target || dup.IsDefault || dup.Weight != 6 || dup.Order != 4 || dup.Name != "Global" {
		t.Fatalf("duplicate: %+v", dup)
	}
	if _, err := h.criteria.Duplicate(h.dbc(), source.ID, target); !types.IsCode(err, types.CodeAuthorization) {
		t.Fatalf("duplicate for another user: want authorization got %v", err)
	}

	fresh := uuid.New()
	copied, err := h.criteria.CopyAll(h.as(fresh), h.user, fresh)
	if err != nil {
		t.Fatalf("CopyAll: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("CopyAll: want=2 got=%d", len(copied))
	}
	listed, _ := h.criteria.ListByUser(h.dbc(), fresh)
	if len(listed) != 2 {
		t.Fatalf("target criteria: want=2 got=%d", len(listed))
	}
	for _, c := range listed {
		if c.IsDefault {
			t.Fatalf("copied criteria must not be defaults")
		}
	}
}

func TestCriteriaActivityIsRecorded(t *testing.T) {
	h := newHarness(t)
	c := h.criterion(t, "tracked", 5)
	weight := 6
	if _, err := h.criteria.Update(h.dbc(), c, CriterionPatch{Weight: &weight}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rows, err := h.activity.ListByEntity(h.dbc(), types.EntityCriterion, c)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(rows) != 2 || rows[0].ActionType != types.ActionCreated || rows[1].ActionType != types.ActionUpdated {
		t.Fatalf("activity trail: %+v", rows)
	}
}
