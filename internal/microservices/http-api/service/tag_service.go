package service

import (
	"context"
	"strings"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type TagService interface {
	CatalogService[models.Tag]
	List(ctx context.Context, q repository.ListQuery) ([]models.Tag, int64, error)
}

type tagService struct {
	catalog[models.Tag]
	repo *repository.TagRepo
}

// NewTagService builds the tag service. Cached events embed their tags.
func NewTagService(repo *repository.TagRepo, c cache.Cache) TagService {
	return &tagService{
		catalog: catalog[models.Tag]{
			name:    "tag",
			store:   repo,
			changed: dropPrefixes(c, cache.PrefixEvents),
			validate: func(t *models.Tag) error {
				t.Name = strings.TrimSpace(t.Name)
				if t.Name == "" {
					return invalid("name is required")
				}
				return nil
			},
		},
		repo: repo,
	}
}

func (s *tagService) List(ctx context.Context, q repository.ListQuery) ([]models.Tag, int64, error) {
	return s.repo.List(ctx, q)
}
