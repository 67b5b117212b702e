package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType distinguishes how the appointment takes place.
type AppointmentType string

const (
	AppointmentOnSite  AppointmentType = "on_site"
	AppointmentVirtual AppointmentType = "virtual"
	AppointmentPhone   AppointmentType = "phone"
)

// Appointment is one scheduled meeting on a board. An
// appointment_scheduling action is the canonical representation of one
// appointment's lifecycle event; Status carries the same labels as that
// action's confirmation status.
type Appointment struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Datetime        time.Time       `gorm:"not null"`
	AppointmentType AppointmentType `gorm:"not null;default:'on_site'"`
	Location        string
	PlatformName    string
	PlatformLink    string
	Status          ConfirmationStatus `gorm:"not null;default:'pending'"`
	Notes           string
	CreatedAt       time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
}
