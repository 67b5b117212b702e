package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"serviceboard/internal/model"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	result := r.db.WithContext(ctx).First(&appt, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, result.Error
	}
	return &appt, nil
}

// GetByBoardID retrieves all appointments of a board ordered by their
// scheduled instant
func (r *AppointmentRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Appointment, error) {
	var appts []model.Appointment
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("datetime").
		Find(&appts)
	if result.Error != nil {
		return nil, result.Error
	}
	return appts, nil
}

// UpdateStatus records an externally driven confirmation outcome
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ConfirmationStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
