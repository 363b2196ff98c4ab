package dto

import "mangafandb/internal/microservices/http-api/models"

type CreateChapterSpoilerDTO struct {
	EventID        *int64                 `json:"eventId,omitempty"`
	ChapterNumber  int                    `json:"chapterNumber" binding:"required,min=1"`
	MinimumChapter int                    `json:"minimumChapter" binding:"required,min=1"`
	Content        string                 `json:"content" binding:"required"`
	Level          models.SpoilerLevel    `json:"level,omitempty" binding:"omitempty,oneof=minor major critical"`
	Category       models.SpoilerCategory `json:"category,omitempty" binding:"omitempty,oneof=plot character gamble reveal other"`
}

func (d CreateChapterSpoilerDTO) ToModel() models.ChapterSpoiler {
	level := d.Level
	if level == "" {
		level = models.SpoilerMinor
	}
	category := d.Category
	if category == "" {
		category = models.SpoilerCategoryPlot
	}
	return models.ChapterSpoiler{
		EventID:        d.EventID,
		ChapterNumber:  d.ChapterNumber,
		MinimumChapter: d.MinimumChapter,
		Content:        d.Content,
		Level:          level,
		Category:       category,
	}
}

type UpdateChapterSpoilerDTO struct {
	EventID        *int64                  `json:"eventId,omitempty"`
	ChapterNumber  *int                    `json:"chapterNumber,omitempty" binding:"omitempty,min=1"`
	MinimumChapter *int                    `json:"minimumChapter,omitempty" binding:"omitempty,min=1"`
	Content        *string                 `json:"content,omitempty"`
	Level          *models.SpoilerLevel    `json:"level,omitempty" binding:"omitempty,oneof=minor major critical"`
	Category       *models.SpoilerCategory `json:"category,omitempty" binding:"omitempty,oneof=plot character gamble reveal other"`
}

func (d UpdateChapterSpoilerDTO) ApplyTo(m *models.ChapterSpoiler) {
	setPtrIf(&m.EventID, d.EventID)
	setIf(&m.ChapterNumber, d.ChapterNumber)
	setIf(&m.MinimumChapter, d.MinimumChapter)
	setIf(&m.Content, d.Content)
	setIf(&m.Level, d.Level)
	setIf(&m.Category, d.Category)
}

// ChapterSpoilerResponse redacts Content when the viewer cannot read it yet.
type ChapterSpoilerResponse struct {
	models.ChapterSpoiler
	CanView bool `json:"canView"`
}

type CheckViewableRequest struct {
	SpoilerIDs   []int64 `json:"spoilerIds" binding:"required,max=200"`
	UserProgress *int    `json:"userProgress,omitempty" binding:"omitempty,min=0"`
}

type ViewableResult struct {
	ID             int64 `json:"id"`
	CanView        bool  `json:"canView"`
	MinimumChapter int   `json:"minimumChapter"`
	Found          bool  `json:"found"`
}

type CheckViewableResponse struct {
	UserProgress int              `json:"userProgress"`
	Results      []ViewableResult `json:"results"`
}
