package repository

import (
	"herald/internal/domain"
	"herald/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ActiveIDs returns the IDs of every active user.
func (r *UserRepository) ActiveIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.User{}).Where("active = ?", true).Pluck("id", &ids).Error
	return ids, err
}

// SegmentIDs returns the IDs of active users in the named segment. Unknown
// segments match zero users.
func (r *UserRepository) SegmentIDs(segment string) ([]uint, error) {
	var ids []uint
	q := r.db.Model(&models.User{}).Where("active = ?", true)
	switch segment {
	case domain.SegmentPremium:
		q = q.Where("plan IN ?", []string{domain.PlanPremium, domain.PlanPro})
	case domain.SegmentFree:
		q = q.Where("plan = ? OR plan = '' OR plan IS NULL", domain.PlanFree)
	default:
		return nil, nil
	}
	err := q.Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepository) ListUsers(search string, page, limit int) ([]models.User, int64, error) {
	var list []models.User
	var total int64
	q := r.db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
