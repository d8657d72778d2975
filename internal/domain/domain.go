// Package domain holds the persisted entities of the idea scoring engine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinWeight = 1
	MaxWeight = 10
	MinScore  = 1
	MaxScore  = 10
)

const (
	EntityCriterion  = "criterion"
	EntityScore      = "score"
	EntityIdea       = "idea"
	EntityComparison = "comparison"
)

const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionReordered  = "reordered"
	ActionSeeded     = "seeded"
	ActionDuplicated = "duplicated"
	ActionCopied     = "copied"
	ActionScored     = "scored"
)

// AllModels lists every table owned by the service, in migration order.
func AllModels() []any {
	return []any{
		&Idea{},
		&Criterion{},
		&Score{},
		&IdeaComparison{},
		&Activity{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func stampTimes(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}

