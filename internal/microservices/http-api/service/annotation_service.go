package service

import (
	"context"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
)

type AnnotationService interface {
	List(ctx context.Context, q repository.ListQuery, f repository.AnnotationFilter, r Reader) ([]dto.AnnotationResponse, int64, error)
	Get(ctx context.Context, id int64, r Reader) (*dto.AnnotationResponse, error)
	Create(ctx context.Context, a *models.Annotation, r Reader) (*models.Annotation, error)
	Update(ctx context.Context, id int64, apply func(*models.Annotation), r Reader) (*models.Annotation, error)
	Delete(ctx context.Context, id int64, r Reader) error
	Approve(ctx context.Context, id int64) (*models.Annotation, error)
	Reject(ctx context.Context, id int64, reason string) (*models.Annotation, error)
}

type annotationService struct {
	moderation[models.Annotation]
	repo *repository.AnnotationRepo
}

func NewAnnotationService(repo *repository.AnnotationRepo, notifications repository.NotificationRepository) AnnotationService {
	return &annotationService{
		moderation: moderation[models.Annotation]{
			kind:          "annotation",
			store:         repo,
			notifications: notifications,
			status:        func(a *models.Annotation) models.ContentStatus { return a.Status },
			author:        func(a *models.Annotation) string { return a.AuthorID },
			title:         func(a *models.Annotation) string { return a.Title },
		},
		repo: repo,
	}
}

func validateAnnotation(a *models.Annotation) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return invalid("content is required")
	}
	if !a.OwnerType.Valid() {
		return invalid("unknown owner type %q", a.OwnerType)
	}
	if a.OwnerID < 1 {
		return invalid("owner id is required")
	}
	if a.IsSpoiler && a.SpoilerChapter == nil && a.ChapterReference == nil {
		return invalid("spoiler annotations need a spoiler chapter or chapter reference")
	}
	return nil
}

func renderAnnotation(a models.Annotation, v spoiler.Viewer) dto.AnnotationResponse {
	hidden := spoiler.ShouldHide(a.SpoilerAt(), v)
	if hidden {
		a.Content = ""
	}
	return dto.AnnotationResponse{Annotation: a, SpoilerHidden: hidden}
}

func (s *annotationService) List(ctx context.Context, q repository.ListQuery, f repository.AnnotationFilter, r Reader) ([]dto.AnnotationResponse, int64, error) {
	items, total, err := s.repo.ListVisible(ctx, q, r.visibility(), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AnnotationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, renderAnnotation(a, r.Viewer))
	}
	return out, total, nil
}

func (s *annotationService) Get(ctx context.Context, id int64, r Reader) (*dto.AnnotationResponse, error) {
	a, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	resp := renderAnnotation(*a, r.Viewer)
	return &resp, nil
}

func (s *annotationService) Create(ctx context.Context, a *models.Annotation, r Reader) (*models.Annotation, error) {
	if !r.Authenticated() {
		return nil, ErrForbidden
	}
	if err := validateAnnotation(a); err != nil {
		return nil, err
	}
	a.AuthorID = r.UserID
	a.Status = models.StatusPending
	a.RejectionReason = nil
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, translate(err, "annotation")
	}
	return a, nil
}

func (s *annotationService) Update(ctx context.Context, id int64, apply func(*models.Annotation), r Reader) (*models.Annotation, error) {
	a, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(a, r); err != nil {
		return nil, err
	}
	apply(a)
	if err := validateAnnotation(a); err != nil {
		return nil, err
	}
	resetForEdit(r, a.AuthorID, &a.Status, &a.RejectionReason)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, translate(err, "annotation")
	}
	return s.reload(ctx, id)
}

func (s *annotationService) Delete(ctx context.Context, id int64, r Reader) error {
	a, err := s.load(ctx, id, r)
	if err != nil {
		return err
	}
	if err := s.authorize(a, r); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id), "annotation")
}
