package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	IdeaStatusDraft     = "draft"
	IdeaStatusEvaluated = "evaluated"
	IdeaStatusApproved  = "approved"
	IdeaStatusArchived  = "archived"
)

// Idea is owned by the idea-management flows. The scoring engine reads it and
// only ever writes TotalScore, which is a snapshot and never authoritative.
type Idea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Status      string    `gorm:"column:status;not null" json:"status"`
	TotalScore  *float64  `gorm:"column:total_score" json:"total_score,omitempty"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Idea) TableName() string { return "ideas" }

func (i *Idea) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	stampTimes(&i.CreatedAt, &i.UpdatedAt)
	if i.Status == "" {
		i.Status = IdeaStatusDraft
	}
	return nil
}

// IdeaComparison is a named grouping of ideas in caller-supplied order.
// The referenced ideas are not validated or owned.
type IdeaComparison struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string                         `gorm:"column:name;not null" json:"name"`
	Description *string                        `gorm:"column:description" json:"description,omitempty"`
	IdeaIDs     datatypes.JSONSlice[uuid.UUID] `gorm:"column:idea_ids" json:"idea_ids"`
	CreatedAt   time.Time                      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time                      `gorm:"not null" json:"updated_at"`
}

func (IdeaComparison) TableName() string { return "idea_comparisons" }

func (c *IdeaComparison) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	stampTimes(&c.CreatedAt, &c.UpdatedAt)
	if c.IdeaIDs == nil {
		c.IdeaIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	return nil
}
