package service

import (
	"context"
	"strings"
	"time"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type ArcService interface {
	CatalogService[models.Arc]
	List(ctx context.Context, q repository.ListQuery, f repository.ArcFilter) ([]models.Arc, int64, error)
}

type arcService struct {
	catalog[models.Arc]
	repo  *repository.ArcRepo
	cache cache.Cache
	ttl   time.Duration
}

// NewArcService builds the arc service. Arc edits move timeline boundaries and
// change the arc embedded in cached events, so all three prefixes are dropped.
func NewArcService(repo *repository.ArcRepo, c cache.Cache, ttl time.Duration) ArcService {
	return &arcService{
		catalog: catalog[models.Arc]{
			name:     "arc",
			store:    repo,
			changed:  dropPrefixes(c, cache.PrefixArcs, cache.PrefixEvents, cache.PrefixTimeline),
			validate: validateArc,
		},
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func validateArc(a *models.Arc) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return invalid("name is required")
	}
	if a.ParentID != nil && a.ID != 0 && *a.ParentID == a.ID {
		return invalid("arc cannot be its own parent")
	}
	return checkRange(a.StartChapter, &a.EndChapter, "arc")
}

func (s *arcService) List(ctx context.Context, q repository.ListQuery, f repository.ArcFilter) ([]models.Arc, int64, error) {
	key := pageKey(cache.PrefixArcs, q, optInt64(f.SeriesID), optInt64(f.ParentID))
	p, err := readThrough(ctx, s.cache, key, s.ttl, func() (page[models.Arc], error) {
		items, total, err := s.repo.ListFiltered(ctx, q, f)
		return page[models.Arc]{Items: items, Total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return p.Items, p.Total, nil
}

func optInt64(v *int64) any {
	if v == nil {
		return "-"
	}
	return *v
}
