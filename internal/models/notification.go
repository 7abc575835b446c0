package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Notification is one row per (logical send, recipient). Fan-out binds every
// persisted row to exactly one recipient; BatchID groups rows that came from
// the same send request.
type Notification struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BatchID     string         `gorm:"size:36;index" json:"batch_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Body        string         `gorm:"size:1000" json:"body"`
	Type        string         `gorm:"size:20;not null;index" json:"type"`
	Priority    string         `gorm:"size:10;not null;default:normal" json:"priority"`
	Channels    string         `gorm:"size:60;not null" json:"channels"` // comma-separated
	DisplayType string         `gorm:"size:10;not null;default:popup" json:"display_type"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	ActionURL   string         `gorm:"size:512" json:"action_url"`
	ActionLabel string         `gorm:"size:100" json:"action_label"`
	Data        string         `gorm:"type:text" json:"data"` // opaque JSON payload
	Status      string         `gorm:"size:12;not null;index;default:PENDING" json:"status"`
	IsRead      bool           `gorm:"not null;index;default:false" json:"is_read"`
	ReadAt      *time.Time     `json:"read_at"`
	AutoHideMs  int            `gorm:"not null;default:5000" json:"auto_hide_ms"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
	SentAt      *time.Time     `json:"sent_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ChannelList splits the stored channel set.
func (n *Notification) ChannelList() []string {
	if n.Channels == "" {
		return nil
	}
	return strings.Split(n.Channels, ",")
}

// SetChannels stores a channel set. Caller validates the values.
func (n *Notification) SetChannels(chs []string) {
	n.Channels = strings.Join(chs, ",")
}
