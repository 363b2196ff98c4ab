package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ChapterSpoilerFilter struct {
	EventID       *int64
	ChapterNumber *int
	Level         models.SpoilerLevel
	Category      models.SpoilerCategory
	Verified      *bool
}

type ChapterSpoilerRepo struct {
	crudRepo[models.ChapterSpoiler]
}

func NewChapterSpoilerRepo(db *gorm.DB) *ChapterSpoilerRepo {
	return &ChapterSpoilerRepo{crudRepo[models.ChapterSpoiler]{
		db:    db,
		table: "chapter_spoilers",
		sortable: map[string]string{
			"chapterNumber":  "chapter_number",
			"minimumChapter": "minimum_chapter",
			"level":          "level",
			"createdAt":      "created_at",
		},
		defaultSort: "chapter_number",
		searchCols:  []string{"content"},
	}}
}

func (r *ChapterSpoilerRepo) ListFiltered(ctx context.Context, q ListQuery, f ChapterSpoilerFilter) ([]models.ChapterSpoiler, int64, error) {
	return r.list(ctx, q, nil, func(tx *gorm.DB) *gorm.DB {
		if f.EventID != nil {
			tx = tx.Where("chapter_spoilers.event_id = ?", *f.EventID)
		}
		if f.ChapterNumber != nil {
			tx = tx.Where("chapter_spoilers.chapter_number = ?", *f.ChapterNumber)
		}
		if f.Level != "" {
			tx = tx.Where("chapter_spoilers.level = ?", f.Level)
		}
		if f.Category != "" {
			tx = tx.Where("chapter_spoilers.category = ?", f.Category)
		}
		if f.Verified != nil {
			tx = tx.Where("chapter_spoilers.is_verified = ?", *f.Verified)
		}
		return tx
	})
}

func (r *ChapterSpoilerRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	res := r.db.WithContext(ctx).Model(&models.ChapterSpoiler{}).Where("id = ?", id).Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
