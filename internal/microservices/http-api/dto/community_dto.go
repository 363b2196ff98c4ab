package dto

import "mangafandb/internal/microservices/http-api/models"

type CreateGuideDTO struct {
	Title       string  `json:"title" binding:"required,max=300"`
	Description string  `json:"description"`
	Content     string  `json:"content" binding:"required"`
	TagIDs      []int64 `json:"tagIds,omitempty"`
}

func (d CreateGuideDTO) ToModel() models.Guide {
	return models.Guide{Title: d.Title, Description: d.Description, Content: d.Content}
}

type UpdateGuideDTO struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=300"`
	Description *string  `json:"description,omitempty"`
	Content     *string  `json:"content,omitempty"`
	TagIDs      *[]int64 `json:"tagIds,omitempty"`
}

func (d UpdateGuideDTO) ApplyTo(m *models.Guide) {
	setIf(&m.Title, d.Title)
	setIf(&m.Description, d.Description)
	setIf(&m.Content, d.Content)
}

type CreateAnnotationDTO struct {
	OwnerType        models.AnnotationOwnerType `json:"ownerType" binding:"required,oneof=character gamble chapter arc"`
	OwnerID          int64                      `json:"ownerId" binding:"required,min=1"`
	Title            string                     `json:"title" binding:"required,max=300"`
	Content          string                     `json:"content" binding:"required"`
	SourceURL        *string                    `json:"sourceUrl,omitempty" binding:"omitempty,url"`
	ChapterReference *int                       `json:"chapterReference,omitempty" binding:"omitempty,min=1"`
	IsSpoiler        bool                       `json:"isSpoiler"`
	SpoilerChapter   *int                       `json:"spoilerChapter,omitempty" binding:"omitempty,min=1"`
}

func (d CreateAnnotationDTO) ToModel() models.Annotation {
	return models.Annotation{
		OwnerType:        d.OwnerType,
		OwnerID:          d.OwnerID,
		Title:            d.Title,
		Content:          d.Content,
		SourceURL:        d.SourceURL,
		ChapterReference: d.ChapterReference,
		IsSpoiler:        d.IsSpoiler,
		SpoilerChapter:   d.SpoilerChapter,
	}
}

type UpdateAnnotationDTO struct {
	Title            *string `json:"title,omitempty" binding:"omitempty,max=300"`
	Content          *string `json:"content,omitempty"`
	SourceURL        *string `json:"sourceUrl,omitempty" binding:"omitempty,url"`
	ChapterReference *int    `json:"chapterReference,omitempty" binding:"omitempty,min=1"`
	IsSpoiler        *bool   `json:"isSpoiler,omitempty"`
	SpoilerChapter   *int    `json:"spoilerChapter,omitempty" binding:"omitempty,min=1"`
}

func (d UpdateAnnotationDTO) ApplyTo(m *models.Annotation) {
	setIf(&m.Title, d.Title)
	setIf(&m.Content, d.Content)
	setPtrIf(&m.SourceURL, d.SourceURL)
	setPtrIf(&m.ChapterReference, d.ChapterReference)
	setIf(&m.IsSpoiler, d.IsSpoiler)
	setPtrIf(&m.SpoilerChapter, d.SpoilerChapter)
}

// AnnotationResponse redacts Content for spoilers past the viewer's progress.
type AnnotationResponse struct {
	models.Annotation
	SpoilerHidden bool `json:"spoilerHidden"`
}

type CreateMediaDTO struct {
	URL           string                `json:"url" binding:"required,url"`
	Type          models.MediaType      `json:"type" binding:"required,oneof=image video audio"`
	Description   *string               `json:"description,omitempty"`
	OwnerType     models.MediaOwnerType `json:"ownerType" binding:"required,oneof=character arc event gamble organization volume"`
	OwnerID       int64                 `json:"ownerId" binding:"required,min=1"`
	ChapterNumber *int                  `json:"chapterNumber,omitempty" binding:"omitempty,min=1"`
	Purpose       models.MediaPurpose   `json:"purpose,omitempty" binding:"omitempty,oneof=gallery entity_display"`
}

func (d CreateMediaDTO) ToModel() models.Media {
	purpose := d.Purpose
	if purpose == "" {
		purpose = models.MediaPurposeGallery
	}
	return models.Media{
		URL:           d.URL,
		Type:          d.Type,
		Description:   d.Description,
		OwnerType:     d.OwnerType,
		OwnerID:       d.OwnerID,
		ChapterNumber: d.ChapterNumber,
		Purpose:       purpose,
	}
}

type UpdateMediaDTO struct {
	URL           *string              `json:"url,omitempty" binding:"omitempty,url"`
	Type          *models.MediaType    `json:"type,omitempty" binding:"omitempty,oneof=image video audio"`
	Description   *string              `json:"description,omitempty"`
	ChapterNumber *int                 `json:"chapterNumber,omitempty" binding:"omitempty,min=1"`
	Purpose       *models.MediaPurpose `json:"purpose,omitempty" binding:"omitempty,oneof=gallery entity_display"`
}

func (d UpdateMediaDTO) ApplyTo(m *models.Media) {
	setIf(&m.URL, d.URL)
	setIf(&m.Type, d.Type)
	setPtrIf(&m.Description, d.Description)
	setPtrIf(&m.ChapterNumber, d.ChapterNumber)
	setIf(&m.Purpose, d.Purpose)
}

// MediaResponse flags media tied to a chapter past the viewer's progress.
type MediaResponse struct {
	models.Media
	SpoilerHidden bool `json:"spoilerHidden"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

type ModerationQueue struct {
	Guides      int64 `json:"guides"`
	Annotations int64 `json:"annotations"`
	Media       int64 `json:"media"`
	Events      int64 `json:"events"`
	Total       int64 `json:"total"`
}
