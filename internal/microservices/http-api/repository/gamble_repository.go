package repository

import (
	"context"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GambleFilter struct {
	ArcID       *int64
	CharacterID *int64
}

type GambleRepo struct {
	crudRepo[models.Gamble]
}

func NewGambleRepo(db *gorm.DB) *GambleRepo {
	return &GambleRepo{crudRepo[models.Gamble]{
		db:    db,
		table: "gambles",
		sortable: map[string]string{
			"name":         "name",
			"startChapter": "start_chapter",
			"createdAt":    "created_at",
		},
		defaultSort: "start_chapter",
		searchCols:  []string{"name", "description", "rules"},
	}}
}

func (r *GambleRepo) ListFiltered(ctx context.Context, q ListQuery, f GambleFilter) ([]models.Gamble, int64, error) {
	return r.list(ctx, q, []string{"Participants"}, func(tx *gorm.DB) *gorm.DB {
		if f.ArcID != nil {
			tx = tx.Where("gambles.arc_id = ?", *f.ArcID)
		}
		if f.CharacterID != nil {
			tx = tx.Where("gambles.id IN (SELECT gamble_id FROM gamble_participants WHERE character_id = ?)", *f.CharacterID)
		}
		return tx
	})
}

func (r *GambleRepo) GetByID(ctx context.Context, id int64) (*models.Gamble, error) {
	return r.get(ctx, id, "Arc", "Participants")
}

func (r *GambleRepo) ReplaceParticipants(ctx context.Context, g *models.Gamble, participants []models.Character) error {
	return replaceAssociation(ctx, r.db, g, "Participants", participants)
}
