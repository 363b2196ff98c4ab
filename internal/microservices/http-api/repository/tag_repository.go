package repository

import (
	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type TagRepo struct {
	crudRepo[models.Tag]
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{crudRepo[models.Tag]{
		db:    db,
		table: "tags",
		sortable: map[string]string{
			"name":      "name",
			"createdAt": "created_at",
		},
		defaultSort: "name",
		searchCols:  []string{"name", "description"},
	}}
}
