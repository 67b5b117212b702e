package repository

import (
	"context"
	"errors"

	"serviceboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequestRepository struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, sr *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

// GetByBoardID returns the board's founding service request, or nil
// when the board was created manually without one.
func (r *ServiceRequestRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) (*model.ServiceRequest, error) {
	var sr model.ServiceRequest
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).First(&sr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sr, nil
}
