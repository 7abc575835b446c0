package models

import "time"

// NotificationPreference is one row per user, lazily created with defaults on
// first read. Channel and category toggles are recorded for clients to
// honor; quiet hours are preference data only.
type NotificationPreference struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	InAppEnabled bool `gorm:"not null;default:true" json:"in_app_enabled"`
	EmailEnabled bool `gorm:"not null;default:true" json:"email_enabled"`
	SMSEnabled   bool `gorm:"not null;default:false" json:"sms_enabled"`

	SystemEnabled         bool `gorm:"not null;default:true" json:"system_enabled"`
	ContentEnabled        bool `gorm:"not null;default:true" json:"content_enabled"`
	RecommendationEnabled bool `gorm:"not null;default:true" json:"recommendation_enabled"`
	SubscriptionEnabled   bool `gorm:"not null;default:true" json:"subscription_enabled"`
	PromotionEnabled      bool `gorm:"not null;default:true" json:"promotion_enabled"`
	ReminderEnabled       bool `gorm:"not null;default:true" json:"reminder_enabled"`

	QuietHoursEnabled bool   `gorm:"not null;default:false" json:"quiet_hours_enabled"`
	QuietHoursStart   string `gorm:"size:5" json:"quiet_hours_start"` // "HH:MM"
	QuietHoursEnd     string `gorm:"size:5" json:"quiet_hours_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultPreference returns the lazily-created row: everything on except SMS.
func DefaultPreference(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:                userID,
		InAppEnabled:          true,
		EmailEnabled:          true,
		SMSEnabled:            false,
		SystemEnabled:         true,
		ContentEnabled:        true,
		RecommendationEnabled: true,
		SubscriptionEnabled:   true,
		PromotionEnabled:      true,
		ReminderEnabled:       true,
	}
}
