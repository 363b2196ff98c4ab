package models

import "time"

type Character struct {
	ID                     int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                   string    `json:"name" gorm:"uniqueIndex;size:200;not null"`
	AlternateNames         []string  `json:"alternateNames" gorm:"serializer:json"`
	Description            *string   `json:"description,omitempty" gorm:"type:text"`
	FirstAppearanceChapter *int      `json:"firstAppearanceChapter,omitempty"`
	Occupation             *string   `json:"occupation,omitempty"`
	ImageURL               *string   `json:"imageUrl,omitempty"`
	CreatedAt              time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt              time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Organizations []Organization `json:"organizations,omitempty" gorm:"many2many:character_organizations;constraint:OnDelete:CASCADE;"`
}

func (Character) TableName() string {
	return "characters"
}
