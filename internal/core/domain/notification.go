package domain

import "time"

type NotificationKind string

const (
	NotifyDeadline   NotificationKind = "deadline"
	NotifyCompliance NotificationKind = "compliance"
	NotifySystem     NotificationKind = "system"
	NotifyDocument   NotificationKind = "document"
)

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Priority  DeadlinePriority `json:"priority"`
	Read      bool             `json:"read"`
	ActionURL string           `json:"action_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
