package service

import (
	"context"
	"strings"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type OrganizationService interface {
	CatalogService[models.Organization]
	List(ctx context.Context, q repository.ListQuery) ([]models.Organization, int64, error)
}

type organizationService struct {
	catalog[models.Organization]
	repo *repository.OrganizationRepo
}

func NewOrganizationService(repo *repository.OrganizationRepo) OrganizationService {
	return &organizationService{
		catalog: catalog[models.Organization]{
			name:  "organization",
			store: repo,
			validate: func(o *models.Organization) error {
				o.Name = strings.TrimSpace(o.Name)
				if o.Name == "" {
					return invalid("name is required")
				}
				return nil
			},
		},
		repo: repo,
	}
}

func (s *organizationService) List(ctx context.Context, q repository.ListQuery) ([]models.Organization, int64, error) {
	return s.repo.List(ctx, q)
}
