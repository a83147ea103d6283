package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and lifecycle timestamps shared by every entity.
// ID and CreatedAt are assigned once at creation time; UpdatedAt is refreshed
// on every mutating write.
type Base struct {
	ID        string     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at" gorm:"autoUpdateTime"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Relation names a relationship collection that must be materialized together
// with the owning entity. The storage layer resolves each value into a
// batched secondary query keyed by the parent ids, so no attribute access
// ever triggers a hidden fetch after the initial query returns.
type Relation string

const (
	RelationUsers Relation = "Users"
	RelationTags  Relation = "Tags"
	RelationTeams Relation = "Teams"
	RelationTeam  Relation = "Team"
)

func (r Relation) String() string {
	return string(r)
}
