package models

import "time"

type Annotation struct {
	ID               int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerType        AnnotationOwnerType `json:"ownerType" gorm:"size:20;not null;index:idx_annotation_owner"`
	OwnerID          int64               `json:"ownerId" gorm:"not null;index:idx_annotation_owner"`
	Title            string              `json:"title" gorm:"size:300;not null"`
	Content          string              `json:"content" gorm:"type:text;not null"`
	SourceURL        *string             `json:"sourceUrl,omitempty"`
	ChapterReference *int                `json:"chapterReference,omitempty"`
	IsSpoiler        bool                `json:"isSpoiler" gorm:"default:false"`
	SpoilerChapter   *int                `json:"spoilerChapter,omitempty"`
	Status           ContentStatus       `json:"status" gorm:"size:20;not null;default:'pending';index"`
	RejectionReason  *string             `json:"rejectionReason,omitempty" gorm:"type:text"`
	AuthorID         string              `json:"authorId" gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Annotation) TableName() string {
	return "annotations"
}

// SpoilerAt returns the chapter a spoiler annotation reveals, falling back to
// the referenced chapter. Zero means the annotation is not chapter-bound.
func (a Annotation) SpoilerAt() int {
	if !a.IsSpoiler {
		return 0
	}
	if a.SpoilerChapter != nil {
		return *a.SpoilerChapter
	}
	if a.ChapterReference != nil {
		return *a.ChapterReference
	}
	return 0
}
