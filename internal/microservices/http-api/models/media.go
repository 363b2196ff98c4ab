package models

import "time"

type Media struct {
	ID              int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	URL             string         `json:"url" gorm:"not null"`
	Type            MediaType      `json:"type" gorm:"size:20;not null"`
	Description     *string        `json:"description,omitempty" gorm:"type:text"`
	OwnerType       MediaOwnerType `json:"ownerType" gorm:"size:20;not null;index:idx_media_owner"`
	OwnerID         int64          `json:"ownerId" gorm:"not null;index:idx_media_owner"`
	ChapterNumber   *int           `json:"chapterNumber,omitempty"`
	Purpose         MediaPurpose   `json:"purpose" gorm:"size:20;not null;default:'gallery'"`
	Status          ContentStatus  `json:"status" gorm:"size:20;not null;default:'pending';index"`
	RejectionReason *string        `json:"rejectionReason,omitempty" gorm:"type:text"`
	SubmittedByID   string         `json:"submittedById" gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`

	SubmittedBy *User `json:"submittedBy,omitempty" gorm:"foreignKey:SubmittedByID;constraint:OnDelete:CASCADE;"`
}

func (Media) TableName() string {
	return "media"
}
