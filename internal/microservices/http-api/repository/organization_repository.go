package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type OrganizationRepo struct {
	crudRepo[models.Organization]
}

func NewOrganizationRepo(db *gorm.DB) *OrganizationRepo {
	return &OrganizationRepo{crudRepo[models.Organization]{
		db:    db,
		table: "organizations",
		sortable: map[string]string{
			"name":      "name",
			"createdAt": "created_at",
		},
		defaultSort: "name",
		searchCols:  []string{"name", "description"},
	}}
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	return r.get(ctx, id, "Members")
}
