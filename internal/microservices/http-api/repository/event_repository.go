package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// EventFilter narrows event listings. Nil fields are ignored.
type EventFilter struct {
	ArcID       *int64
	GambleID    *int64
	CharacterID *int64
	TagID       *int64
	Type        models.EventType
	ChapterFrom *int
	ChapterTo   *int
	Status      models.ContentStatus
}

func (f EventFilter) scope(tx *gorm.DB) *gorm.DB {
	if f.ArcID != nil {
		tx = tx.Where("events.arc_id = ?", *f.ArcID)
	}
	if f.GambleID != nil {
		tx = tx.Where("events.gamble_id = ?", *f.GambleID)
	}
	if f.CharacterID != nil {
		tx = tx.Where("events.id IN (SELECT event_id FROM event_characters WHERE character_id = ?)", *f.CharacterID)
	}
	if f.TagID != nil {
		tx = tx.Where("events.id IN (SELECT event_id FROM event_tags WHERE tag_id = ?)", *f.TagID)
	}
	if f.Type != "" {
		tx = tx.Where("events.type = ?", f.Type)
	}
	if f.ChapterFrom != nil {
		tx = tx.Where("events.chapter_number >= ?", *f.ChapterFrom)
	}
	if f.ChapterTo != nil {
		tx = tx.Where("events.chapter_number <= ?", *f.ChapterTo)
	}
	if f.Status != "" {
		tx = tx.Where("events.status = ?", f.Status)
	}
	return tx
}

type EventRepo struct {
	crudRepo[models.Event]
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{crudRepo[models.Event]{
		db:    db,
		table: "events",
		sortable: map[string]string{
			"chapterNumber": "chapter_number",
			"title":         "title",
			"type":          "type",
			"createdAt":     "created_at",
		},
		defaultSort: "chapter_number",
		searchCols:  []string{"title", "description"},
	}}
}

func (r *EventRepo) ListFiltered(ctx context.Context, q ListQuery, f EventFilter) ([]models.Event, int64, error) {
	return r.list(ctx, q, []string{"Characters", "Tags"}, f.scope)
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.get(ctx, id, "Arc", "Gamble", "Characters", "Tags")
}

// ListForTimeline returns every event matching f ordered by chapter then id,
// without pagination. Only scalar columns are loaded.
func (r *EventRepo) ListForTimeline(ctx context.Context, f EventFilter) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := f.scope(r.db.WithContext(ctx).Model(&models.Event{})).
		Order("events.chapter_number ASC, events.id ASC").
		Find(&events).Error
	return events, err
}

// CreateWithLinks inserts e together with its character and tag links.
func (r *EventRepo) CreateWithLinks(ctx context.Context, e *models.Event) error {
	return r.createWith(ctx, e, "Arc", "Gamble", "Characters.*", "Tags.*")
}

func (r *EventRepo) ReplaceCharacters(ctx context.Context, e *models.Event, characters []models.Character) error {
	return replaceAssociation(ctx, r.db, e, "Characters", characters)
}

func (r *EventRepo) ReplaceTags(ctx context.Context, e *models.Event, tags []models.Tag) error {
	return replaceAssociation(ctx, r.db, e, "Tags", tags)
}
