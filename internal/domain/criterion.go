package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criterion is a named, weighted dimension a user scores ideas against.
type Criterion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_criteria_user_order,priority:1" json:"user_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Weight      int       `gorm:"column:weight;not null" json:"weight"`
	IsDefault   bool      `gorm:"column:is_default;not null;index" json:"is_default"`
	// sort_order because "order" is reserved in SQL.
	Order     int       `gorm:"column:sort_order;not null;index:idx_criteria_user_order,priority:2" json:"order"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Criterion) TableName() string { return "idea_criteria" }

func (c *Criterion) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	stampTimes(&c.CreatedAt, &c.UpdatedAt)
	return nil
}
