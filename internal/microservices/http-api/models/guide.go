package models

import "time"

type Guide struct {
	ID              int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string        `json:"title" gorm:"size:300;not null"`
	Description     string        `json:"description" gorm:"type:text;not null;default:''"`
	Content         string        `json:"content" gorm:"type:text;not null"`
	Status          ContentStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	RejectionReason *string       `json:"rejectionReason,omitempty" gorm:"type:text"`
	AuthorID        string        `json:"authorId" gorm:"type:uuid;not null;index"`
	ViewCount       int64         `json:"viewCount" gorm:"default:0"`
	LikeCount       int64         `json:"likeCount" gorm:"default:0"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Tags   []Tag `json:"tags,omitempty" gorm:"many2many:guide_tags;constraint:OnDelete:CASCADE;"`
}

func (Guide) TableName() string {
	return "guides"
}
