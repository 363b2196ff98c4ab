package service

import (
	"context"
	"strings"
	"time"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type BadgeService interface {
	CatalogService[models.Badge]
	List(ctx context.Context, q repository.ListQuery) ([]models.Badge, int64, error)
	UserBadges(ctx context.Context, userID string) ([]models.UserBadge, error)
	Award(ctx context.Context, userID string, badgeID int64, awardedBy string, reason *string, expiresAt *time.Time) (*models.UserBadge, error)
	Revoke(ctx context.Context, userID string, badgeID int64) error
}

type badgeService struct {
	catalog[models.Badge]
	repo  *repository.BadgeRepo
	users repository.UserRepository
}

func NewBadgeService(repo *repository.BadgeRepo, users repository.UserRepository) BadgeService {
	return &badgeService{
		catalog: catalog[models.Badge]{
			name:  "badge",
			store: repo,
			validate: func(b *models.Badge) error {
				b.Name = strings.TrimSpace(b.Name)
				if b.Name == "" {
					return invalid("name is required")
				}
				if !b.Type.Valid() {
					return invalid("unknown badge type %q", b.Type)
				}
				return nil
			},
		},
		repo:  repo,
		users: users,
	}
}

func (s *badgeService) List(ctx context.Context, q repository.ListQuery) ([]models.Badge, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *badgeService) UserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, translate(err, "user")
	}
	return s.repo.ListUserBadges(ctx, userID)
}

// Award grants a manually awardable badge. Supporter badges tied to payments
// are rejected.
func (s *badgeService) Award(ctx context.Context, userID string, badgeID int64, awardedBy string, reason *string, expiresAt *time.Time) (*models.UserBadge, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, translate(err, "user")
	}
	badge, err := s.Get(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if !badge.IsManuallyAwardable {
		return nil, invalid("badge %q cannot be awarded manually", badge.Name)
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, invalid("expiry must be in the future")
	}
	ub := &models.UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}
	if awardedBy != "" {
		ub.AwardedByID = &awardedBy
	}
	if err := s.repo.Award(ctx, ub); err != nil {
		return nil, translate(err, "user badge")
	}
	ub.Badge = badge
	return ub, nil
}

func (s *badgeService) Revoke(ctx context.Context, userID string, badgeID int64) error {
	return translate(s.repo.Revoke(ctx, userID, badgeID), "user badge")
}
