package repository

import (
	"context"
	"time"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q ListQuery) ([]models.User, int64, error)
	UpdateProgress(ctx context.Context, id string, progress int) error
	UpdateSpoilerOverride(ctx context.Context, id string, override *int) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db    *gorm.DB
	pages crudRepo[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
		pages: crudRepo[models.User]{
			db:    db,
			table: "users",
			sortable: map[string]string{
				"username":     "username",
				"createdAt":    "created_at",
				"userProgress": "user_progress",
				"role":         "role",
			},
			defaultSort: "username",
			searchCols:  []string{"username", "email"},
		},
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Badges").Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// return nil on miss so callers never mistake a zero struct for a hit
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Badges", "is_active = ?", true).
		Preload("Badges.Badge").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q ListQuery) ([]models.User, int64, error) {
	return r.pages.list(ctx, q, nil)
}

func (r *userRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	return r.updateColumn(ctx, id, "user_progress", progress)
}

func (r *userRepository) UpdateSpoilerOverride(ctx context.Context, id string, override *int) error {
	return r.updateColumn(ctx, id, "spoiler_chapter_override", override)
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	return r.updateColumn(ctx, id, "role", role)
}

func (r *userRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.updateColumn(ctx, id, "last_login", at)
}

func (r *userRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
