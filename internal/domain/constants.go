package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Delivery channels.
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification lifecycle. SENT is reserved for a dispatched-but-unconfirmed
// phase; nothing writes it today.
const (
	StatusPending   = "PENDING"
	StatusSent      = "SENT"
	StatusDelivered = "DELIVERED"
	StatusFailed    = "FAILED"
	StatusRead      = "READ"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// DisplayType controls in-app rendering: popup auto-dismisses, screen
// requires acknowledgment.
const (
	DisplayPopup  = "popup"
	DisplayScreen = "screen"
	DisplayBoth   = "both"
)

const (
	TypeSystem         = "system"
	TypeContent        = "content"
	TypeRecommendation = "recommendation"
	TypeSubscription   = "subscription"
	TypeDownload       = "download"
	TypePromotion      = "promotion"
	TypeAlert          = "alert"
	TypeReminder       = "reminder"
	TypeInfo           = "info"
)

// Targeting segments by subscription plan.
const (
	SegmentPremium = "premium"
	SegmentFree    = "free"
)

const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanPro     = "pro"
)

// DefaultAutoHideMs is how long a popup stays visible before auto-dismiss.
const DefaultAutoHideMs = 5000

// PopupViewLimit caps the pending-popups view.
const PopupViewLimit = 5

var notificationTypes = map[string]bool{
	TypeSystem: true, TypeContent: true, TypeRecommendation: true,
	TypeSubscription: true, TypeDownload: true, TypePromotion: true,
	TypeAlert: true, TypeReminder: true, TypeInfo: true,
}

var channels = map[string]bool{
	ChannelInApp: true, ChannelEmail: true, ChannelSMS: true,
}

var displayTypes = map[string]bool{
	DisplayPopup: true, DisplayScreen: true, DisplayBoth: true,
}

// priorityRank orders priorities for tie-breaking; lower rank sorts first.
var priorityRank = map[string]int{
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityNormal: 2,
	PriorityLow:    3,
}

func ValidNotificationType(t string) bool { return notificationTypes[t] }

func ValidChannel(ch string) bool { return channels[ch] }

func ValidDisplayType(d string) bool { return displayTypes[d] }

func ValidPriority(p string) bool {
	_, ok := priorityRank[p]
	return ok
}

// PriorityRank returns the sort rank of a priority (urgent first). Unknown
// values sort last.
func PriorityRank(p string) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}
