package dto

import "mangafandb/internal/microservices/http-api/models"

type CreateEventDTO struct {
	Title          string               `json:"title" binding:"required,max=300"`
	Description    string               `json:"description"`
	Type           models.EventType     `json:"type" binding:"required,oneof=gamble decision reveal shift resolution"`
	ChapterNumber  int                  `json:"chapterNumber" binding:"required,min=1"`
	SpoilerChapter *int                 `json:"spoilerChapter,omitempty" binding:"omitempty,min=1"`
	ArcID          *int64               `json:"arcId,omitempty"`
	GambleID       *int64               `json:"gambleId,omitempty"`
	Status         models.ContentStatus `json:"status,omitempty" binding:"omitempty,oneof=pending approved rejected"`
	CharacterIDs   []int64              `json:"characterIds,omitempty"`
	TagIDs         []int64              `json:"tagIds,omitempty"`
}

func (d CreateEventDTO) ToModel() models.Event {
	status := d.Status
	if status == "" {
		status = models.StatusApproved
	}
	return models.Event{
		Title:          d.Title,
		Description:    d.Description,
		Type:           d.Type,
		ChapterNumber:  d.ChapterNumber,
		SpoilerChapter: d.SpoilerChapter,
		ArcID:          d.ArcID,
		GambleID:       d.GambleID,
		Status:         status,
	}
}

// UpdateEventDTO is partial. CharacterIDs and TagIDs replace the memberships
// when present; an empty list clears them.
type UpdateEventDTO struct {
	Title          *string               `json:"title,omitempty" binding:"omitempty,max=300"`
	Description    *string               `json:"description,omitempty"`
	Type           *models.EventType     `json:"type,omitempty" binding:"omitempty,oneof=gamble decision reveal shift resolution"`
	ChapterNumber  *int                  `json:"chapterNumber,omitempty" binding:"omitempty,min=1"`
	SpoilerChapter *int                  `json:"spoilerChapter,omitempty" binding:"omitempty,min=1"`
	ArcID          *int64                `json:"arcId,omitempty"`
	GambleID       *int64                `json:"gambleId,omitempty"`
	Status         *models.ContentStatus `json:"status,omitempty" binding:"omitempty,oneof=pending approved rejected"`
	CharacterIDs   *[]int64              `json:"characterIds,omitempty"`
	TagIDs         *[]int64              `json:"tagIds,omitempty"`
}

func (d UpdateEventDTO) ApplyTo(m *models.Event) {
	setIf(&m.Title, d.Title)
	setIf(&m.Description, d.Description)
	setIf(&m.Type, d.Type)
	setIf(&m.ChapterNumber, d.ChapterNumber)
	setPtrIf(&m.SpoilerChapter, d.SpoilerChapter)
	setPtrIf(&m.ArcID, d.ArcID)
	setPtrIf(&m.GambleID, d.GambleID)
	setIf(&m.Status, d.Status)
}

// EventResponse is an event rendered for one viewer. Hidden events keep their
// title and chapter but lose the description.
type EventResponse struct {
	models.Event
	SpoilerHidden bool `json:"spoilerHidden"`
}

// TimelineEvent is the slim event shape inside timeline sections.
type TimelineEvent struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Type           models.EventType `json:"type"`
	ChapterNumber  int              `json:"chapterNumber"`
	SpoilerChapter *int             `json:"spoilerChapter,omitempty"`
	ArcID          *int64           `json:"arcId,omitempty"`
	GambleID       *int64           `json:"gambleId,omitempty"`
	SpoilerHidden  bool             `json:"spoilerHidden"`
}

type TimelineSection struct {
	Kind         string          `json:"kind"`
	GambleID     *int64          `json:"gambleEventId,omitempty"`
	ResolutionID *int64          `json:"resolutionEventId,omitempty"`
	StartChapter int             `json:"startChapter"`
	EndChapter   int             `json:"endChapter"`
	Events       []TimelineEvent `json:"events"`
}

// TimelineArc is one arc's worth of sections. ArcID is nil for events that
// belong to no arc.
type TimelineArc struct {
	ArcID        *int64            `json:"arcId"`
	ArcName      string            `json:"arcName,omitempty"`
	StartChapter int               `json:"startChapter"`
	EndChapter   int               `json:"endChapter"`
	Sections     []TimelineSection `json:"sections"`
}

type TimelineResponse struct {
	Arcs              []TimelineArc `json:"arcs"`
	EffectiveProgress int           `json:"effectiveProgress"`
}

type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

type SearchHit struct {
	Kind          string `json:"kind"`
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Chapter       int    `json:"chapter,omitempty"`
	SpoilerHidden bool   `json:"spoilerHidden"`
}
