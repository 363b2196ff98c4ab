package service

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type VolumeService interface {
	CatalogService[models.Volume]
	List(ctx context.Context, q repository.ListQuery) ([]models.Volume, int64, error)
	Chapters(ctx context.Context, volumeID int64, q repository.ListQuery) ([]models.Chapter, int64, error)
}

type volumeService struct {
	catalog[models.Volume]
	repo     *repository.VolumeRepo
	chapters *repository.ChapterRepo
}

func NewVolumeService(repo *repository.VolumeRepo, chapters *repository.ChapterRepo) VolumeService {
	return &volumeService{
		catalog: catalog[models.Volume]{
			name:  "volume",
			store: repo,
			validate: func(v *models.Volume) error {
				if v.Number < 1 {
					return invalid("volume number must be at least 1")
				}
				return checkRange(v.StartChapter, &v.EndChapter, "volume")
			},
		},
		repo:     repo,
		chapters: chapters,
	}
}

func (s *volumeService) List(ctx context.Context, q repository.ListQuery) ([]models.Volume, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *volumeService) Chapters(ctx context.Context, volumeID int64, q repository.ListQuery) ([]models.Chapter, int64, error) {
	if _, err := s.Get(ctx, volumeID); err != nil {
		return nil, 0, err
	}
	return s.chapters.ListFiltered(ctx, q, repository.ChapterFilter{VolumeID: &volumeID})
}
