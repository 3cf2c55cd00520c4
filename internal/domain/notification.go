package domain

// NotificationType classifies a notification for icon and grouping purposes.
type NotificationType string

const (
	NotificationOrder     NotificationType = "order"
	NotificationPromotion NotificationType = "promotion"
	NotificationSystem    NotificationType = "system"
	NotificationSecurity  NotificationType = "security"
)

// Notification is one entry in a user's notification feed. TimeAgo is a
// display label, not a timestamp; entries are kept newest-first.
type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	TimeAgo string           `json:"timeAgo"`
	Read    bool             `json:"read"`
}

// NotificationDraft is the caller-supplied part of a new notification.
// The store assigns the ID, age label, and read flag.
type NotificationDraft struct {
	Type    NotificationType
	Title   string
	Message string
}
