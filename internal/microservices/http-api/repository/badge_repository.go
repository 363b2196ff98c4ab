package repository

import (
	"context"
	"errors"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BadgeRepo struct {
	crudRepo[models.Badge]
}

func NewBadgeRepo(db *gorm.DB) *BadgeRepo {
	return &BadgeRepo{crudRepo[models.Badge]{
		db:    db,
		table: "badges",
		sortable: map[string]string{
			"name":      "name",
			"type":      "type",
			"createdAt": "created_at",
		},
		defaultSort: "name",
		searchCols:  []string{"name", "description"},
	}}
}

func (r *BadgeRepo) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	out := make([]models.UserBadge, 0)
	err := r.db.WithContext(ctx).Preload("Badge").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("awarded_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Award grants a badge. Re-awarding an inactive badge reactivates the same row.
func (r *BadgeRepo) Award(ctx context.Context, ub *models.UserBadge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserBadge
		err := tx.Where("user_id = ? AND badge_id = ?", ub.UserID, ub.BadgeID).First(&existing).Error
		switch {
		case err == nil:
			if existing.IsActive {
				return gorm.ErrDuplicatedKey
			}
			ub.ID = existing.ID
			ub.IsActive = true
			return tx.Model(&existing).Updates(map[string]any{
				"is_active":     true,
				"reason":        ub.Reason,
				"expires_at":    ub.ExpiresAt,
				"awarded_by_id": ub.AwardedByID,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			ub.IsActive = true
			return tx.Omit("Badge").Create(ub).Error
		default:
			return err
		}
	})
}

func (r *BadgeRepo) Revoke(ctx context.Context, userID string, badgeID int64) error {
	res := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ? AND is_active = ?", userID, badgeID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
