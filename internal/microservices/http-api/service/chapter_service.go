package service

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type ChapterService interface {
	CatalogService[models.Chapter]
	List(ctx context.Context, q repository.ListQuery, f repository.ChapterFilter) ([]models.Chapter, int64, error)
	GetByNumber(ctx context.Context, number int) (*models.Chapter, error)
}

type chapterService struct {
	catalog[models.Chapter]
	repo *repository.ChapterRepo
}

func NewChapterService(repo *repository.ChapterRepo) ChapterService {
	return &chapterService{
		catalog: catalog[models.Chapter]{
			name:  "chapter",
			store: repo,
			validate: func(c *models.Chapter) error {
				if c.Number < 1 {
					return invalid("chapter number must be at least 1")
				}
				return nil
			},
		},
		repo: repo,
	}
}

func (s *chapterService) List(ctx context.Context, q repository.ListQuery, f repository.ChapterFilter) ([]models.Chapter, int64, error) {
	return s.repo.ListFiltered(ctx, q, f)
}

func (s *chapterService) GetByNumber(ctx context.Context, number int) (*models.Chapter, error) {
	c, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, translate(err, "chapter")
	}
	return c, nil
}
