package models

import "time"

// ChapterSpoiler is a spoiler note only readable once the reader has reached
// MinimumChapter.
type ChapterSpoiler struct {
	ID             int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID        *int64          `json:"eventId,omitempty" gorm:"index"`
	ChapterNumber  int             `json:"chapterNumber" gorm:"not null;index"`
	MinimumChapter int             `json:"minimumChapter" gorm:"not null;check:minimum_chapter >= 1"`
	Content        string          `json:"content" gorm:"type:text;not null"`
	Level          SpoilerLevel    `json:"level" gorm:"size:20;not null;default:'minor'"`
	Category       SpoilerCategory `json:"category" gorm:"size:20;not null;default:'plot'"`
	IsVerified     bool            `json:"isVerified" gorm:"default:false"`
	AuthorID       *string         `json:"authorId,omitempty" gorm:"type:uuid;index"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL;"`
}

func (ChapterSpoiler) TableName() string {
	return "chapter_spoilers"
}
