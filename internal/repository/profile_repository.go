package repository

import (
	"context"
	"errors"

	"tasktracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

type ProfileRepositoryInterface interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
}

var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate returns the user's profile, creating an empty one on first
// access. A concurrent creator losing the unique race re-reads the winner.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where(model.UserProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		profile = model.UserProfile{}
		err = r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
