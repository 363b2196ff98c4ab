package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MediaFilter struct {
	OwnerType models.MediaOwnerType
	OwnerID   *int64
	Type      models.MediaType
	Purpose   models.MediaPurpose
	Status    models.ContentStatus
}

type MediaRepo struct {
	crudRepo[models.Media]
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{crudRepo[models.Media]{
		db:    db,
		table: "media",
		sortable: map[string]string{
			"chapterNumber": "chapter_number",
			"createdAt":     "created_at",
		},
		defaultSort: "created_at",
		searchCols:  []string{"description", "url"},
		ownerColumn: "submitted_by_id",
	}}
}

func (r *MediaRepo) ListVisible(ctx context.Context, q ListQuery, v Visibility, f MediaFilter) ([]models.Media, int64, error) {
	return r.list(ctx, q, nil, r.visibilityScope(v, f.Status), func(tx *gorm.DB) *gorm.DB {
		if f.OwnerType != "" {
			tx = tx.Where("media.owner_type = ?", f.OwnerType)
		}
		if f.OwnerID != nil {
			tx = tx.Where("media.owner_id = ?", *f.OwnerID)
		}
		if f.Type != "" {
			tx = tx.Where("media.type = ?", f.Type)
		}
		if f.Purpose != "" {
			tx = tx.Where("media.purpose = ?", f.Purpose)
		}
		return tx
	})
}
