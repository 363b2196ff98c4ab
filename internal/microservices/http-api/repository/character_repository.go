package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CharacterFilter struct {
	OrganizationID *int64
}

type CharacterRepo struct {
	crudRepo[models.Character]
}

func NewCharacterRepo(db *gorm.DB) *CharacterRepo {
	return &CharacterRepo{crudRepo[models.Character]{
		db:    db,
		table: "characters",
		sortable: map[string]string{
			"name":                   "name",
			"firstAppearanceChapter": "first_appearance_chapter",
			"createdAt":              "created_at",
		},
		defaultSort: "name",
		searchCols:  []string{"name", "description", "occupation"},
	}}
}

func (r *CharacterRepo) ListFiltered(ctx context.Context, q ListQuery, f CharacterFilter) ([]models.Character, int64, error) {
	return r.list(ctx, q, nil, func(tx *gorm.DB) *gorm.DB {
		if f.OrganizationID != nil {
			tx = tx.Where("characters.id IN (SELECT character_id FROM character_organizations WHERE organization_id = ?)", *f.OrganizationID)
		}
		return tx
	})
}

func (r *CharacterRepo) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	return r.get(ctx, id, "Organizations")
}

func (r *CharacterRepo) ReplaceOrganizations(ctx context.Context, c *models.Character, orgs []models.Organization) error {
	return replaceAssociation(ctx, r.db, c, "Organizations", orgs)
}
