package models

import "time"

type Volume struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Number       int       `json:"number" gorm:"uniqueIndex;not null"`
	Title        *string   `json:"title,omitempty"`
	StartChapter int       `json:"startChapter" gorm:"not null"`
	EndChapter   int       `json:"endChapter" gorm:"not null"`
	CoverURL     *string   `json:"coverUrl,omitempty"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Volume) TableName() string {
	return "volumes"
}
