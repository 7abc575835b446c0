package repository

import (
	"errors"

	"herald/internal/models"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetOrCreate returns the user's preference row, creating the default one on
// first read. Rows are never deleted here; account removal owns that.
func (r *PreferenceRepository) GetOrCreate(userID uint) (*models.NotificationPreference, error) {
	var p models.NotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	def := models.DefaultPreference(userID)
	if err := r.db.Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

// Update applies the given column changes to the user's preference row.
func (r *PreferenceRepository) Update(userID uint, updates map[string]interface{}) (*models.NotificationPreference, error) {
	if _, err := r.GetOrCreate(userID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		err := r.db.Model(&models.NotificationPreference{}).
			Where("user_id = ?", userID).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	var p models.NotificationPreference
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
