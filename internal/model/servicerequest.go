package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is the immutable founding event of a board: the
// customer request the engagement was created from. A board carries at
// most one, and the timeline always renders it as the last (oldest)
// entry regardless of its timestamp.
type ServiceRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerName  string    `gorm:"not null"`
	CustomerEmail string
	Summary       string `gorm:"not null"`
	Details       string
	RequestedAt   time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
}
