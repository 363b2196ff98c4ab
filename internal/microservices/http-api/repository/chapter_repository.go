package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ChapterFilter struct {
	VolumeID   *int64
	NumberFrom *int
	NumberTo   *int
}

type ChapterRepo struct {
	crudRepo[models.Chapter]
}

func NewChapterRepo(db *gorm.DB) *ChapterRepo {
	return &ChapterRepo{crudRepo[models.Chapter]{
		db:    db,
		table: "chapters",
		sortable: map[string]string{
			"number":    "number",
			"title":     "title",
			"createdAt": "created_at",
		},
		defaultSort: "number",
		searchCols:  []string{"title", "summary"},
	}}
}

func (r *ChapterRepo) ListFiltered(ctx context.Context, q ListQuery, f ChapterFilter) ([]models.Chapter, int64, error) {
	return r.list(ctx, q, nil, func(tx *gorm.DB) *gorm.DB {
		if f.VolumeID != nil {
			tx = tx.Where("chapters.volume_id = ?", *f.VolumeID)
		}
		if f.NumberFrom != nil {
			tx = tx.Where("chapters.number >= ?", *f.NumberFrom)
		}
		if f.NumberTo != nil {
			tx = tx.Where("chapters.number <= ?", *f.NumberTo)
		}
		return tx
	})
}

func (r *ChapterRepo) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	return r.get(ctx, id, "Volume")
}

func (r *ChapterRepo) GetByNumber(ctx context.Context, number int) (*models.Chapter, error) {
	var c models.Chapter
	if err := r.db.WithContext(ctx).Preload("Volume").Where("number = ?", number).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
