package repository

import (
	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SeriesRepo struct {
	crudRepo[models.Series]
}

func NewSeriesRepo(db *gorm.DB) *SeriesRepo {
	return &SeriesRepo{crudRepo[models.Series]{
		db:    db,
		table: "series",
		sortable: map[string]string{
			"name":      "name",
			"order":     "sort_order",
			"createdAt": "created_at",
		},
		defaultSort: "sort_order",
		searchCols:  []string{"name", "description"},
	}}
}
