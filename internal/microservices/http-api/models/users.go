package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                     string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username               string     `gorm:"uniqueIndex;not null" json:"username"`
	Email                  string     `gorm:"uniqueIndex;not null" json:"email"`
	Password               string     `gorm:"column:password_hash;not null" json:"-"`
	Role                   Role       `gorm:"size:20;default:'user';not null" json:"role"`
	UserProgress           int        `gorm:"default:0;not null" json:"userProgress"`
	SpoilerChapterOverride *int       `json:"spoilerChapterOverride,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
	LastLogin              *time.Time `json:"lastLogin,omitempty"`

	Badges []UserBadge `gorm:"foreignKey:UserID" json:"badges,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
