package service

import (
	"context"
	"strings"
	"time"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type SeriesService interface {
	CatalogService[models.Series]
	List(ctx context.Context, q repository.ListQuery) ([]models.Series, int64, error)
}

type seriesService struct {
	catalog[models.Series]
	repo  *repository.SeriesRepo
	cache cache.Cache
	ttl   time.Duration
}

func NewSeriesService(repo *repository.SeriesRepo, c cache.Cache, ttl time.Duration) SeriesService {
	return &seriesService{
		catalog: catalog[models.Series]{
			name:    "series",
			store:   repo,
			changed: dropPrefixes(c, cache.PrefixSeries),
			validate: func(s *models.Series) error {
				s.Name = strings.TrimSpace(s.Name)
				if s.Name == "" {
					return invalid("name is required")
				}
				return nil
			},
		},
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func (s *seriesService) List(ctx context.Context, q repository.ListQuery) ([]models.Series, int64, error) {
	p, err := readThrough(ctx, s.cache, pageKey(cache.PrefixSeries, q), s.ttl, func() (page[models.Series], error) {
		items, total, err := s.repo.List(ctx, q)
		return page[models.Series]{Items: items, Total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return p.Items, p.Total, nil
}
