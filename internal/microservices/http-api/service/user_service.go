package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"

	"gorm.io/gorm"
)

type UserService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error)
	UpdateProgress(ctx context.Context, id string, progress int) (*models.User, error)
	UpdateSpoilerOverride(ctx context.Context, id string, override *int) (*models.User, error)
	UpdateRole(ctx context.Context, actorID, id string, role models.Role) (*models.User, error)
	// ResolveReader builds the reader for a request. requestOverride is the
	// spoilerChapter query parameter and wins over stored settings.
	ResolveReader(ctx context.Context, userID string, requestOverride *int) (Reader, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *userService) UpdateProgress(ctx context.Context, id string, progress int) (*models.User, error) {
	if progress < 0 {
		return nil, invalid("progress must not be negative")
	}
	if err := s.repo.UpdateProgress(ctx, id, progress); err != nil {
		return nil, translate(err, "user")
	}
	return s.Get(ctx, id)
}

func (s *userService) UpdateSpoilerOverride(ctx context.Context, id string, override *int) (*models.User, error) {
	if override != nil && *override < 0 {
		return nil, invalid("spoiler chapter override must not be negative")
	}
	if err := s.repo.UpdateSpoilerOverride(ctx, id, override); err != nil {
		return nil, translate(err, "user")
	}
	return s.Get(ctx, id)
}

func (s *userService) UpdateRole(ctx context.Context, actorID, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	if actorID == id && role != models.RoleAdmin {
		return nil, fmt.Errorf("admins cannot demote themselves: %w", ErrForbidden)
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, translate(err, "user")
	}
	slog.InfoContext(ctx, "user role changed", "user_id", id, "role", role, "by", actorID)
	return s.Get(ctx, id)
}

func (s *userService) ResolveReader(ctx context.Context, userID string, requestOverride *int) (Reader, error) {
	if userID == "" {
		return Reader{Viewer: spoiler.Resolve(0, nil, requestOverride)}, nil
	}
	u, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// the account was deleted after the token was issued
		return Reader{Viewer: spoiler.Resolve(0, nil, requestOverride)}, nil
	}
	if err != nil {
		return Reader{}, fmt.Errorf("resolve reader: %w", err)
	}
	return Reader{
		UserID: u.ID,
		Role:   u.Role,
		Viewer: spoiler.Resolve(u.UserProgress, u.SpoilerChapterOverride, requestOverride),
	}, nil
}
