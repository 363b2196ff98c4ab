package repository

import (
	"context"
	"fmt"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// SearchHit is one match from the cross-entity search.
type SearchHit struct {
	Kind    string `json:"kind"`
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Chapter int    `json:"chapter,omitempty"`
}

type SearchRepo struct {
	db *gorm.DB
}

func NewSearchRepo(db *gorm.DB) *SearchRepo {
	return &SearchRepo{db: db}
}

// Search matches term against names and titles of characters, arcs, gambles
// and approved events, returning at most limit hits per kind.
func (r *SearchRepo) Search(ctx context.Context, term string, limit int) ([]SearchHit, error) {
	pattern := containsPattern(term)
	hits := make([]SearchHit, 0)

	var characters []models.Character
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?"+likeEscapeClause, pattern).
		Order("name ASC").Limit(limit).Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("search characters: %w", err)
	}
	for _, c := range characters {
		h := SearchHit{Kind: "character", ID: c.ID, Title: c.Name}
		if c.FirstAppearanceChapter != nil {
			h.Chapter = *c.FirstAppearanceChapter
		}
		hits = append(hits, h)
	}

	var arcs []models.Arc
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?"+likeEscapeClause, pattern).
		Order("start_chapter ASC").Limit(limit).Find(&arcs).Error; err != nil {
		return nil, fmt.Errorf("search arcs: %w", err)
	}
	for _, a := range arcs {
		hits = append(hits, SearchHit{Kind: "arc", ID: a.ID, Title: a.Name, Chapter: a.StartChapter})
	}

	var gambles []models.Gamble
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?"+likeEscapeClause, pattern).
		Order("start_chapter ASC").Limit(limit).Find(&gambles).Error; err != nil {
		return nil, fmt.Errorf("search gambles: %w", err)
	}
	for _, g := range gambles {
		hits = append(hits, SearchHit{Kind: "gamble", ID: g.ID, Title: g.Name, Chapter: g.StartChapter})
	}

	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("status = ? AND LOWER(title) LIKE ?"+likeEscapeClause, models.StatusApproved, pattern).
		Order("chapter_number ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	for _, e := range events {
		hits = append(hits, SearchHit{Kind: "event", ID: e.ID, Title: e.Title, Chapter: e.VisibleChapter()})
	}
	return hits, nil
}
