package models

import "time"

// Notification types sent to authors when a moderator acts on their submission.
const (
	NotificationApproved = "SUBMISSION_APPROVED"
	NotificationRejected = "SUBMISSION_REJECTED"
)

type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type       string    `gorm:"not null" json:"type"`
	EntityType string    `gorm:"size:20" json:"entityType"`
	EntityID   int64     `json:"entityId"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
