package model

import "time"

// NotificationType is notification category
type NotificationType string

const (
	NotificationJob     NotificationType = "job"
	NotificationPayment NotificationType = "payment"
	NotificationTeam    NotificationType = "team"
	NotificationSystem  NotificationType = "system"
)

// Notification is notification model entity
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewNotification is data required to raise notification
type NewNotification struct {
	Title   string           `json:"title" validate:"required,max=200"`
	Message string           `json:"message" validate:"required,max=2000"`
	Type    NotificationType `json:"type" validate:"required,oneof=job payment team system"`
}
