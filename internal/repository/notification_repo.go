package repository

import (
	"errors"
	"fmt"
	"time"

	"herald/internal/domain"
	"herald/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// ListFilter narrows the paginated list. A zero UserID means no owner filter
// (admin listing).
type ListFilter struct {
	UserID      uint
	Type        string
	UnreadOnly  bool
	DisplayType string
	Page        int
	Limit       int
}

// DeliveryStats aggregates outcomes over a trailing window.
type DeliveryStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Read      int64 `json:"read"`
	Unread    int64 `json:"unread"`
}

// screenOrder ranks priorities for the screen view using the same ranking as
// domain.PriorityRank; unknown values sort last.
var screenOrder = fmt.Sprintf(
	"CASE priority WHEN '%s' THEN %d WHEN '%s' THEN %d WHEN '%s' THEN %d ELSE %d END, created_at DESC",
	domain.PriorityUrgent, domain.PriorityRank(domain.PriorityUrgent),
	domain.PriorityHigh, domain.PriorityRank(domain.PriorityHigh),
	domain.PriorityNormal, domain.PriorityRank(domain.PriorityNormal),
	domain.PriorityRank(domain.PriorityLow),
)

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// CreateBatch inserts all rows in one transaction; on any failure no rows
// survive.
func (r *NotificationRepository) CreateBatch(ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, n := range ns {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *NotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// GetByIDAndUser loads a notification owned by userID. Absence and foreign
// ownership are both ErrNotFound.
func (r *NotificationRepository) GetByIDAndUser(id, userID uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// List returns a page of notifications plus the total matching count and the
// owner's unread count. The unread count ignores every filter except owner.
func (r *NotificationRepository) List(f ListFilter) ([]models.Notification, int64, int64, error) {
	q := r.db.Model(&models.Notification{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if f.DisplayType != "" {
		q = q.Where("display_type = ?", f.DisplayType)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	var list []models.Notification
	err := q.Order("created_at DESC").Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, 0, err
	}
	var unread int64
	uq := r.db.Model(&models.Notification{}).Where("is_read = ?", false)
	if f.UserID != 0 {
		uq = uq.Where("user_id = ?", f.UserID)
	}
	if err := uq.Count(&unread).Error; err != nil {
		return nil, 0, 0, err
	}
	return list, total, unread, nil
}

// PendingPopups returns the owner's unread, unexpired popup notifications,
// newest first, capped at domain.PopupViewLimit.
func (r *NotificationRepository) PendingPopups(userID uint, now time.Time) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Where("display_type IN ?", []string{domain.DisplayPopup, domain.DisplayBoth}).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Limit(domain.PopupViewLimit).
		Find(&list).Error
	return list, err
}

// PendingScreen returns the owner's unread, unexpired screen notifications
// ordered by priority descending, then newest first. Uncapped.
func (r *NotificationRepository) PendingScreen(userID uint, now time.Time) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Where("display_type IN ?", []string{domain.DisplayScreen, domain.DisplayBoth}).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order(screenOrder).
		Find(&list).Error
	return list, err
}

// MarkRead acknowledges one notification. Idempotent for already-read rows;
// ErrNotFound when no row matches id+owner.
func (r *NotificationRepository) MarkRead(id, userID uint, now time.Time) error {
	n, err := r.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	return r.db.Model(&models.Notification{}).Where("id = ?", n.ID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
			"status":  domain.StatusRead,
		}).Error
}

// MarkAllRead acknowledges every unread notification of a user and returns
// the number of rows affected.
func (r *NotificationRepository) MarkAllRead(userID uint, now time.Time) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
			"status":  domain.StatusRead,
		})
	return res.RowsAffected, res.Error
}

// SetDeliveryResult records the delivery phase outcome. sent_at is always
// stamped; delivered_at only on success. Rows already acknowledged (READ)
// keep their status: a user read must never be downgraded by delivery.
func (r *NotificationRepository) SetDeliveryResult(id uint, delivered bool, now time.Time) error {
	status := domain.StatusFailed
	updates := map[string]interface{}{"sent_at": now}
	if delivered {
		status = domain.StatusDelivered
		updates["delivered_at"] = now
	}
	// Timestamps are stamped unconditionally; only the status column keeps a
	// READ row from being downgraded.
	updates["status"] = gorm.Expr("CASE WHEN status = ? THEN status ELSE ? END", domain.StatusRead, status)
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a notification. A non-zero userID restricts deletion to the
// owner's rows; zero deletes any row (admin).
func (r *NotificationRepository) Delete(id, userID uint) error {
	q := r.db.Where("id = ?", id)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	res := q.Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats aggregates delivery outcomes for rows created since the given time.
func (r *NotificationRepository) Stats(since time.Time) (*DeliveryStats, error) {
	stats := &DeliveryStats{}
	base := func() *gorm.DB {
		return r.db.Model(&models.Notification{}).Where("created_at >= ?", since)
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusDelivered).Count(&stats.Delivered).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusFailed).Count(&stats.Failed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_read = ?", true).Count(&stats.Read).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
