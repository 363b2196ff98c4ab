package dto

import "mangafandb/internal/microservices/http-api/models"

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginRequest accepts either the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType"`
	ExpiresIn    int64         `json:"expiresIn"` // seconds
	User         *UserResponse `json:"user,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

// UserResponse is the account view returned to its owner and to admins.
type UserResponse struct {
	ID                     string             `json:"id"`
	Username               string             `json:"username"`
	Email                  string             `json:"email,omitempty"`
	Role                   models.Role        `json:"role"`
	UserProgress           int                `json:"userProgress"`
	SpoilerChapterOverride *int               `json:"spoilerChapterOverride"`
	Badges                 []models.UserBadge `json:"badges,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                     u.ID,
		Username:               u.Username,
		Email:                  u.Email,
		Role:                   u.Role,
		UserProgress:           u.UserProgress,
		SpoilerChapterOverride: u.SpoilerChapterOverride,
		Badges:                 u.Badges,
	}
}

// PublicProfile hides contact details and reading settings.
type PublicProfile struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	Role         models.Role        `json:"role"`
	UserProgress int                `json:"userProgress"`
	Badges       []models.UserBadge `json:"badges"`
}

func NewPublicProfile(u *models.User) PublicProfile {
	badges := u.Badges
	if badges == nil {
		badges = []models.UserBadge{}
	}
	return PublicProfile{ID: u.ID, Username: u.Username, Role: u.Role, UserProgress: u.UserProgress, Badges: badges}
}

type UpdateProgressRequest struct {
	UserProgress *int `json:"userProgress" binding:"required,min=0"`
}

// UpdateSettingsRequest sets or clears (null) the spoiler override.
type UpdateSettingsRequest struct {
	SpoilerChapterOverride *int `json:"spoilerChapterOverride" binding:"omitempty,min=0"`
}

type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=user moderator admin"`
}
