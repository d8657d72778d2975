package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity is an append-only audit row written by the activity sink.
type Activity struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType  string         `gorm:"column:entity_type;not null;index:idx_activity_entity,priority:1" json:"entity_type"`
	EntityID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_entity,priority:2" json:"entity_id"`
	ActionType  string         `gorm:"column:action_type;not null" json:"action_type"`
	Description string         `gorm:"column:description" json:"description"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if len(a.Metadata) == 0 {
		a.Metadata = datatypes.JSON([]byte("{}"))
	}
	return nil
}
