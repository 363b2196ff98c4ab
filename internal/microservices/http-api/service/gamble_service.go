package service

import (
	"context"
	"strings"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type GambleService interface {
	CatalogService[models.Gamble]
	List(ctx context.Context, q repository.ListQuery, f repository.GambleFilter) ([]models.Gamble, int64, error)
	SetParticipants(ctx context.Context, id int64, characterIDs []int64) (*models.Gamble, error)
}

type gambleService struct {
	catalog[models.Gamble]
	repo       *repository.GambleRepo
	characters *repository.CharacterRepo
}

func NewGambleService(repo *repository.GambleRepo, characters *repository.CharacterRepo, c cache.Cache) GambleService {
	return &gambleService{
		catalog: catalog[models.Gamble]{
			name:    "gamble",
			store:   repo,
			changed: dropPrefixes(c, cache.PrefixEvents, cache.PrefixTimeline),
			validate: func(g *models.Gamble) error {
				g.Name = strings.TrimSpace(g.Name)
				if g.Name == "" {
					return invalid("name is required")
				}
				return checkRange(g.StartChapter, g.EndChapter, "gamble")
			},
		},
		repo:       repo,
		characters: characters,
	}
}

func (s *gambleService) List(ctx context.Context, q repository.ListQuery, f repository.GambleFilter) ([]models.Gamble, int64, error) {
	return s.repo.ListFiltered(ctx, q, f)
}

func (s *gambleService) SetParticipants(ctx context.Context, id int64, characterIDs []int64) (*models.Gamble, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := loadAll(ctx, s.characters.FindByIDs, characterIDs, "character")
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceParticipants(ctx, g, participants); err != nil {
		return nil, translate(err, "gamble participants")
	}
	return s.Get(ctx, id)
}
