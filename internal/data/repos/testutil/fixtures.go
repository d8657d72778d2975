package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/ideascore-backend/internal/domain"
)

func SeedIdea(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string) *types.Idea {
	tb.Helper()
	i := &types.Idea{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Status: types.IdeaStatusDraft,
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed idea: %v", err)
	}
	// Keeps created_at strictly increasing for ordering assertions.
	time.Sleep(time.Millisecond)
	return i
}

func SeedCriterion(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, weight, order int) *types.Criterion {
	tb.Helper()
	c := &types.Criterion{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Weight: weight,
		Order:  order,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed criterion: %v", err)
	}
	time.Sleep(time.Millisecond)
	return c
}

func SeedScore(tb testing.TB, ctx context.Context, tx *gorm.DB, ideaID, criteriaID, userID uuid.UUID, value int) *types.Score {
	tb.Helper()
	s := &types.Score{
		ID:         uuid.New(),
		IdeaID:     ideaID,
		CriteriaID: criteriaID,
		UserID:     userID,
		Value:      value,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed score: %v", err)
	}
	time.Sleep(time.Millisecond)
	return s
}

func PtrString(s string) *string { return &s }
