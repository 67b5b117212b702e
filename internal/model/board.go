package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardStatus is the lifecycle status of a service board.
type BoardStatus string

const (
	BoardStatusDraft     BoardStatus = "draft"
	BoardStatusActive    BoardStatus = "active"
	BoardStatusPending   BoardStatus = "pending"
	BoardStatusCompleted BoardStatus = "completed"
	BoardStatusCancelled BoardStatus = "cancelled"
)

// IsTerminal reports whether the board has reached a final status.
// Adding actions to a terminal board is a business-rule decision made
// upstream, not enforced here.
func (s BoardStatus) IsTerminal() bool {
	return s == BoardStatusCompleted || s == BoardStatusCancelled
}

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardRef    string    `gorm:"uniqueIndex;not null"` // opaque public identifier used in share links
	Title       string    `gorm:"not null"`
	Description string
	Status      BoardStatus `gorm:"not null;default:'draft';check:status IN ('draft', 'active', 'pending', 'completed', 'cancelled')"`
	// PasswordHash is a bcrypt hash when the board is password gated,
	// nil when anyone with the share link may view it. The gate is a
	// board-level property, never per-action.
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ServiceRequest *ServiceRequest `gorm:"foreignKey:BoardID"`
	Actions        []Action        `gorm:"foreignKey:BoardID"`
	Appointments   []Appointment   `gorm:"foreignKey:BoardID"`
}

// IsGated reports whether viewing the board's actions requires the
// shared password.
func (b *Board) IsGated() bool {
	return b.PasswordHash != nil && *b.PasswordHash != ""
}
