package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"serviceboard/internal/model"
)

type ActionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Create adds a new action to the board timeline
func (r *ActionRepository) Create(ctx context.Context, action *model.Action) error {
	return r.db.WithContext(ctx).Create(action).Error
}

// GetByID retrieves an action by its ID
func (r *ActionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Action, error) {
	var action model.Action
	result := r.db.WithContext(ctx).First(&action, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, result.Error
	}
	return &action, nil
}

// GetByBoardID retrieves all actions of a board, newest first. The
// secondary sort on id keeps the order deterministic for equal
// timestamps so repeated fetches present the same feed.
func (r *ActionRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Action, error) {
	var actions []model.Action
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC, id").
		Find(&actions)
	if result.Error != nil {
		return nil, result.Error
	}
	return actions, nil
}

// Update updates an existing action
func (r *ActionRepository) Update(ctx context.Context, action *model.Action) error {
	result := r.db.WithContext(ctx).Save(action)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActionNotFound
	}
	return nil
}

// UpdateStatus sets the generic progress status of an action
func (r *ActionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ActionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Action{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActionNotFound
	}
	return nil
}
