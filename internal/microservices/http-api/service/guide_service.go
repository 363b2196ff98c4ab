package service

import (
	"context"
	"log/slog"
	"strings"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
)

type GuideService interface {
	List(ctx context.Context, q repository.ListQuery, f repository.GuideFilter, r Reader) ([]models.Guide, int64, error)
	// Get returns a visible guide and counts the view.
	Get(ctx context.Context, id int64, r Reader) (*models.Guide, error)
	Create(ctx context.Context, g *models.Guide, tagIDs []int64, r Reader) (*models.Guide, error)
	Update(ctx context.Context, id int64, apply func(*models.Guide), tagIDs *[]int64, r Reader) (*models.Guide, error)
	Delete(ctx context.Context, id int64, r Reader) error
	Like(ctx context.Context, id int64, r Reader) (*models.Guide, error)
	Approve(ctx context.Context, id int64) (*models.Guide, error)
	Reject(ctx context.Context, id int64, reason string) (*models.Guide, error)
}

type guideService struct {
	moderation[models.Guide]
	repo *repository.GuideRepo
	tags *repository.TagRepo
}

func NewGuideService(repo *repository.GuideRepo, tags *repository.TagRepo, notifications repository.NotificationRepository) GuideService {
	return &guideService{
		moderation: moderation[models.Guide]{
			kind:          "guide",
			store:         repo,
			notifications: notifications,
			status:        func(g *models.Guide) models.ContentStatus { return g.Status },
			author:        func(g *models.Guide) string { return g.AuthorID },
			title:         func(g *models.Guide) string { return g.Title },
		},
		repo: repo,
		tags: tags,
	}
}

func validateGuide(g *models.Guide) error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(g.Content) == "" {
		return invalid("content is required")
	}
	return nil
}

func (s *guideService) List(ctx context.Context, q repository.ListQuery, f repository.GuideFilter, r Reader) ([]models.Guide, int64, error) {
	return s.repo.ListVisible(ctx, q, r.visibility(), f)
}

func (s *guideService) Get(ctx context.Context, id int64, r Reader) (*models.Guide, error) {
	g, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	if g.Status == models.StatusApproved {
		if err := s.repo.IncrementViews(ctx, id); err != nil {
			slog.WarnContext(ctx, "guide view count not updated", "id", id, "error", err)
		} else {
			g.ViewCount++
		}
	}
	return g, nil
}

func (s *guideService) Create(ctx context.Context, g *models.Guide, tagIDs []int64, r Reader) (*models.Guide, error) {
	if !r.Authenticated() {
		return nil, ErrForbidden
	}
	if err := validateGuide(g); err != nil {
		return nil, err
	}
	tags, err := loadAll(ctx, s.tags.FindByIDs, tagIDs, "tag")
	if err != nil {
		return nil, err
	}
	g.AuthorID = r.UserID
	g.Status = models.StatusPending
	g.RejectionReason = nil
	g.ViewCount, g.LikeCount = 0, 0
	g.Tags = tags
	if err := s.repo.CreateWithTags(ctx, g); err != nil {
		return nil, translate(err, "guide")
	}
	return s.reload(ctx, g.ID)
}

func (s *guideService) Update(ctx context.Context, id int64, apply func(*models.Guide), tagIDs *[]int64, r Reader) (*models.Guide, error) {
	g, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(g, r); err != nil {
		return nil, err
	}
	apply(g)
	if err := validateGuide(g); err != nil {
		return nil, err
	}
	resetForEdit(r, g.AuthorID, &g.Status, &g.RejectionReason)

	var tags []models.Tag
	if tagIDs != nil {
		if tags, err = loadAll(ctx, s.tags.FindByIDs, *tagIDs, "tag"); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, translate(err, "guide")
	}
	if tagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, g, tags); err != nil {
			return nil, translate(err, "guide tags")
		}
	}
	return s.reload(ctx, id)
}

func (s *guideService) Delete(ctx context.Context, id int64, r Reader) error {
	g, err := s.load(ctx, id, r)
	if err != nil {
		return err
	}
	if err := s.authorize(g, r); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id), "guide")
}

// Like counts a like on an approved guide.
func (s *guideService) Like(ctx context.Context, id int64, r Reader) (*models.Guide, error) {
	g, err := s.load(ctx, id, r)
	if err != nil {
		return nil, err
	}
	if g.Status != models.StatusApproved {
		return nil, invalid("only approved guides can be liked")
	}
	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		return nil, translate(err, "guide")
	}
	return s.reload(ctx, id)
}
