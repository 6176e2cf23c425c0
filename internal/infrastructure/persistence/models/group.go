// Package models holds the GORM persistence models and their
// conversions to and from the domain entities.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sellersync/backend/internal/domain/group"
)

// GroupModel is the persistence model for a tenant group.
type GroupModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null"`
	CallbackURL string    `gorm:"type:varchar(500)"`
	Secret      string    `gorm:"type:varchar(200);not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts the persistence model to a domain Group.
func (m *GroupModel) ToDomain() *group.Group {
	return &group.Group{
		ID:          m.ID,
		Name:        m.Name,
		CallbackURL: m.CallbackURL,
		Secret:      m.Secret,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
