package models

import "time"

type Badge struct {
	ID                  int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description         string    `json:"description" gorm:"type:text;not null;default:''"`
	Type                BadgeType `json:"type" gorm:"size:30;not null"`
	Icon                string    `json:"icon" gorm:"not null;default:''"`
	Color               string    `json:"color" gorm:"size:20;not null;default:''"`
	IsManuallyAwardable bool      `json:"isManuallyAwardable" gorm:"not null"`
	CreatedAt           time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_badge"`
	BadgeID     int64      `json:"badgeId" gorm:"not null;uniqueIndex:idx_user_badge"`
	AwardedAt   time.Time  `json:"awardedAt" gorm:"autoCreateTime"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Reason      *string    `json:"reason,omitempty" gorm:"type:text"`
	AwardedByID *string    `json:"awardedById,omitempty" gorm:"type:uuid"`
	IsActive    bool       `json:"isActive" gorm:"default:true"`

	Badge *Badge `json:"badge,omitempty" gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE;"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
