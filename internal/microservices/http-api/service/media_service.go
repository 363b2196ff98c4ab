package service

import (
	"context"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
)

type MediaService interface {
	List(ctx context.Context, q repository.ListQuery, f repository.MediaFilter, r Reader) ([]dto.MediaResponse, int64, error)
	Get(ctx context.Context, id int64, r Reader) (*dto.MediaResponse, error)
	Create(ctx context.Context, m *models.Media, r Reader) (*models.Media, error)
	Update(ctx context.Context, id int64, apply func(*models.Media), r Reader) (*models.Media, error)
	Delete(ctx context.Context, id int64, r Reader) error
	Approve(ctx context.Context, id int64) (*models.Media, error)
	Reject(ctx context.Context, id int64, reason string) (*models.Media, error)
}

type mediaService struct {
	moderation[models.Media]
	repo *repository.MediaRepo
}

func NewMediaService(repo *repository.MediaRepo, notifications repository.NotificationRepository) MediaService {
	return &mediaService{
		moderation: moderation[models.Media]{
			kind:          "media",
			store:         repo,
			notifications: notifications,
			status:        func(m *models.Media) models.ContentStatus { return m.Status },
			author:        func(m *models.Media) string { return m.SubmittedByID },
			title:         func(m *models.Media) string { return m.URL },
		},
		repo: repo,
	}
}

func validateMedia(m *models.Media) error {
	m.URL = strings.TrimSpace(m.URL)
	if m.URL == "" {
		return invalid("url is required")
	}
	if !m.Type.Valid() {
		return invalid("unknown media type %q", m.Type)
	}
	if !m.OwnerType.Valid() {
		return invalid("unknown owner type %q", m.OwnerType)
	}
	if m.Purpose == "" {
		m.Purpose = models.MediaPurposeGallery
	}
	if !m.Purpose.Valid() {
		return invalid("unknown media purpose %q", m.Purpose)
	}
	return nil
}

// renderMedia only flags spoilers; clients blur the item.
func renderMedia(m models.Media, v spoiler.Viewer) dto.MediaResponse {
	chapter := 0
	if m.ChapterNumber != nil {
		chapter = *m.ChapterNumber
	}
	return dto.MediaResponse{Media: m, SpoilerHidden: spoiler.ShouldHide(chapter, v)}
}

func (s *mediaService) List(ctx context.Context, q repository.ListQuery, f repository.MediaFilter, r Reader) ([]dto.MediaResponse, int64, error) {
	items, total, err := s.repo.ListVisible(ctx, q, r.visibility(), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, renderMedia(m, r.Viewer))
	}
	return out, total, nil
}

func (s *mediaService) Get(ctx context.Context, id int64, r Reader) (*dto.MediaResponse, error) {
	m, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	resp := renderMedia(*m, r.Viewer)
	return &resp, nil
}

func (s *mediaService) Create(ctx context.Context, m *models.Media, r Reader) (*models.Media, error) {
	if !r.Authenticated() {
		return nil, ErrForbidden
	}
	if err := validateMedia(m); err != nil {
		return nil, err
	}
	m.SubmittedByID = r.UserID
	m.Status = models.StatusPending
	m.RejectionReason = nil
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, translate(err, "media")
	}
	return m, nil
}

func (s *mediaService) Update(ctx context.Context, id int64, apply func(*models.Media), r Reader) (*models.Media, error) {
	m, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(m, r); err != nil {
		return nil, err
	}
	apply(m)
	if err := validateMedia(m); err != nil {
		return nil, err
	}
	resetForEdit(r, m.SubmittedByID, &m.Status, &m.RejectionReason)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, translate(err, "media")
	}
	return s.reload(ctx, id)
}

func (s *mediaService) Delete(ctx context.Context, id int64, r Reader) error {
	m, err := s.load(ctx, id, r)
	if err != nil {
		return err
	}
	if err := s.authorize(m, r); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id), "media")
}
