package service

import (
	"context"
	"strings"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type CharacterService interface {
	CatalogService[models.Character]
	List(ctx context.Context, q repository.ListQuery, f repository.CharacterFilter) ([]models.Character, int64, error)
	SetOrganizations(ctx context.Context, id int64, organizationIDs []int64) (*models.Character, error)
}

type characterService struct {
	catalog[models.Character]
	repo *repository.CharacterRepo
	orgs *repository.OrganizationRepo
}

func NewCharacterService(repo *repository.CharacterRepo, orgs *repository.OrganizationRepo, c cache.Cache) CharacterService {
	return &characterService{
		catalog: catalog[models.Character]{
			name:    "character",
			store:   repo,
			changed: dropPrefixes(c, cache.PrefixEvents),
			validate: func(c *models.Character) error {
				c.Name = strings.TrimSpace(c.Name)
				if c.Name == "" {
					return invalid("name is required")
				}
				if c.FirstAppearanceChapter != nil && *c.FirstAppearanceChapter < 0 {
					return invalid("first appearance chapter must not be negative")
				}
				return nil
			},
		},
		repo: repo,
		orgs: orgs,
	}
}

func (s *characterService) List(ctx context.Context, q repository.ListQuery, f repository.CharacterFilter) ([]models.Character, int64, error) {
	return s.repo.ListFiltered(ctx, q, f)
}

func (s *characterService) SetOrganizations(ctx context.Context, id int64, organizationIDs []int64) (*models.Character, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orgs, err := loadAll(ctx, s.orgs.FindByIDs, organizationIDs, "organization")
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceOrganizations(ctx, c, orgs); err != nil {
		return nil, translate(err, "character organizations")
	}
	return s.Get(ctx, id)
}

// loadAll resolves ids through find and rejects the request when any is missing.
func loadAll[T any](ctx context.Context, find func(context.Context, []int64) ([]T, error), ids []int64, what string) ([]T, error) {
	ids = dedupe(ids)
	items, err := find(ctx, ids)
	if err != nil {
		return nil, translate(err, what)
	}
	if len(items) != len(ids) {
		return nil, invalid("one or more %s ids do not exist", what)
	}
	return items, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
