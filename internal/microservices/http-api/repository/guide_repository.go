package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GuideFilter struct {
	AuthorID string
	TagID    *int64
	Status   models.ContentStatus
}

type GuideRepo struct {
	crudRepo[models.Guide]
}

func NewGuideRepo(db *gorm.DB) *GuideRepo {
	return &GuideRepo{crudRepo[models.Guide]{
		db:    db,
		table: "guides",
		sortable: map[string]string{
			"title":     "title",
			"viewCount": "view_count",
			"likeCount": "like_count",
			"createdAt": "created_at",
		},
		defaultSort: "created_at",
		searchCols:  []string{"title", "description"},
		ownerColumn: "author_id",
	}}
}

func (r *GuideRepo) ListVisible(ctx context.Context, q ListQuery, v Visibility, f GuideFilter) ([]models.Guide, int64, error) {
	return r.list(ctx, q, []string{"Tags"}, r.visibilityScope(v, f.Status), func(tx *gorm.DB) *gorm.DB {
		if f.AuthorID != "" {
			tx = tx.Where("guides.author_id = ?", f.AuthorID)
		}
		if f.TagID != nil {
			tx = tx.Where("guides.id IN (SELECT guide_id FROM guide_tags WHERE tag_id = ?)", *f.TagID)
		}
		return tx
	})
}

func (r *GuideRepo) GetByID(ctx context.Context, id int64) (*models.Guide, error) {
	return r.get(ctx, id, "Tags")
}

func (r *GuideRepo) IncrementViews(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "view_count")
}

func (r *GuideRepo) IncrementLikes(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "like_count")
}

func (r *GuideRepo) increment(ctx context.Context, id int64, column string) error {
	res := r.db.WithContext(ctx).Model(&models.Guide{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuideRepo) CreateWithTags(ctx context.Context, g *models.Guide) error {
	return r.createWith(ctx, g, "Author", "Tags.*")
}

func (r *GuideRepo) ReplaceTags(ctx context.Context, g *models.Guide, tags []models.Tag) error {
	return replaceAssociation(ctx, r.db, g, "Tags", tags)
}
