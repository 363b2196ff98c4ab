package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ArcFilter struct {
	SeriesID *int64
	ParentID *int64
}

type ArcRepo struct {
	crudRepo[models.Arc]
}

func NewArcRepo(db *gorm.DB) *ArcRepo {
	return &ArcRepo{crudRepo[models.Arc]{
		db:    db,
		table: "arcs",
		sortable: map[string]string{
			"name":         "name",
			"order":        "sort_order",
			"startChapter": "start_chapter",
			"createdAt":    "created_at",
		},
		defaultSort: "sort_order",
		searchCols:  []string{"name", "description"},
	}}
}

func (r *ArcRepo) ListFiltered(ctx context.Context, q ListQuery, f ArcFilter) ([]models.Arc, int64, error) {
	return r.list(ctx, q, nil, func(tx *gorm.DB) *gorm.DB {
		if f.SeriesID != nil {
			tx = tx.Where("arcs.series_id = ?", *f.SeriesID)
		}
		if f.ParentID != nil {
			tx = tx.Where("arcs.parent_id = ?", *f.ParentID)
		}
		return tx
	})
}

func (r *ArcRepo) GetByID(ctx context.Context, id int64) (*models.Arc, error) {
	return r.get(ctx, id, "Series")
}

// FindByChapter returns the innermost arcs covering chapter.
func (r *ArcRepo) FindByChapter(ctx context.Context, chapter int) ([]models.Arc, error) {
	var arcs []models.Arc
	err := r.db.WithContext(ctx).
		Where("start_chapter <= ? AND end_chapter >= ?", chapter, chapter).
		Order("start_chapter DESC, id ASC").
		Find(&arcs).Error
	return arcs, err
}
