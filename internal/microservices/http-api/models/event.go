package models

import "time"

// Event is a notable story beat pinned to a chapter.
type Event struct {
	ID             int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title          string        `json:"title" gorm:"size:300;not null"`
	Description    string        `json:"description" gorm:"type:text;not null;default:''"`
	Type           EventType     `json:"type" gorm:"size:20;not null;index"`
	ChapterNumber  int           `json:"chapterNumber" gorm:"not null;index"`
	SpoilerChapter *int          `json:"spoilerChapter,omitempty"`
	ArcID          *int64        `json:"arcId,omitempty" gorm:"index"`
	GambleID       *int64        `json:"gambleId,omitempty" gorm:"index"`
	Status         ContentStatus `json:"status" gorm:"size:20;not null;default:'approved';index"`
	CreatedByID    *string       `json:"createdById,omitempty" gorm:"type:uuid"`
	CreatedAt      time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	Arc        *Arc        `json:"arc,omitempty" gorm:"foreignKey:ArcID;constraint:OnDelete:SET NULL;"`
	Gamble     *Gamble     `json:"gamble,omitempty" gorm:"foreignKey:GambleID;constraint:OnDelete:SET NULL;"`
	Characters []Character `json:"characters,omitempty" gorm:"many2many:event_characters;constraint:OnDelete:CASCADE;"`
	Tags       []Tag       `json:"tags,omitempty" gorm:"many2many:event_tags;constraint:OnDelete:CASCADE;"`
}

func (Event) TableName() string {
	return "events"
}

// VisibleChapter is the chapter the event is treated as spoiling. An explicit
// spoiler chapter wins over the chapter the event happens in.
func (e Event) VisibleChapter() int {
	if e.SpoilerChapter != nil {
		return *e.SpoilerChapter
	}
	return e.ChapterNumber
}
