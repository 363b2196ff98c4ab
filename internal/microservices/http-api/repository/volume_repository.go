package repository

import (
	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type VolumeRepo struct {
	crudRepo[models.Volume]
}

func NewVolumeRepo(db *gorm.DB) *VolumeRepo {
	return &VolumeRepo{crudRepo[models.Volume]{
		db:    db,
		table: "volumes",
		sortable: map[string]string{
			"number":       "number",
			"startChapter": "start_chapter",
			"createdAt":    "created_at",
		},
		defaultSort: "number",
		searchCols:  []string{"title", "description"},
	}}
}
