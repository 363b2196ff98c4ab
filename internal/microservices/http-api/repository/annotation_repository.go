package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type AnnotationFilter struct {
	OwnerType models.AnnotationOwnerType
	OwnerID   *int64
	AuthorID  string
	Status    models.ContentStatus
}

type AnnotationRepo struct {
	crudRepo[models.Annotation]
}

func NewAnnotationRepo(db *gorm.DB) *AnnotationRepo {
	return &AnnotationRepo{crudRepo[models.Annotation]{
		db:    db,
		table: "annotations",
		sortable: map[string]string{
			"title":            "title",
			"chapterReference": "chapter_reference",
			"createdAt":        "created_at",
		},
		defaultSort: "created_at",
		searchCols:  []string{"title", "content"},
		ownerColumn: "author_id",
	}}
}

func (r *AnnotationRepo) ListVisible(ctx context.Context, q ListQuery, v Visibility, f AnnotationFilter) ([]models.Annotation, int64, error) {
	return r.list(ctx, q, nil, r.visibilityScope(v, f.Status), func(tx *gorm.DB) *gorm.DB {
		if f.OwnerType != "" {
			tx = tx.Where("annotations.owner_type = ?", f.OwnerType)
		}
		if f.OwnerID != nil {
			tx = tx.Where("annotations.owner_id = ?", *f.OwnerID)
		}
		if f.AuthorID != "" {
			tx = tx.Where("annotations.author_id = ?", f.AuthorID)
		}
		return tx
	})
}
