package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Score is one user's rating of one idea against one criterion. The unique
// index makes (idea, criteria, user) the logical key used by upserts.
type Score struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_score_idea_criteria_user,priority:1" json:"idea_id"`
	CriteriaID uuid.UUID `gorm:"column:criteria_id;type:uuid;not null;uniqueIndex:idx_score_idea_criteria_user,priority:2;index:idx_score_criteria" json:"criteria_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_score_idea_criteria_user,priority:3;index:idx_score_user" json:"user_id"`
	Value      int       `gorm:"column:score;not null" json:"score"`
	Notes      *string   `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Score) TableName() string { return "idea_scores" }

func (s *Score) BeforeCreate(_ *gorm.DB) error {
	ensureID(&s.ID)
	stampTimes(&s.CreatedAt, &s.UpdatedAt)
	return nil
}
