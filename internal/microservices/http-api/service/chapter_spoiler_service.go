package service

import (
	"context"
	"log/slog"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
)

type ChapterSpoilerService interface {
	List(ctx context.Context, q repository.ListQuery, f repository.ChapterSpoilerFilter, r Reader) ([]dto.ChapterSpoilerResponse, int64, error)
	Get(ctx context.Context, id int64, r Reader) (*dto.ChapterSpoilerResponse, error)
	Create(ctx context.Context, s *models.ChapterSpoiler, r Reader) error
	Update(ctx context.Context, id int64, apply func(*models.ChapterSpoiler)) (*models.ChapterSpoiler, error)
	Delete(ctx context.Context, id int64) error
	Verify(ctx context.Context, id int64, verified bool) error
	// CheckViewable answers, per id, whether a reader at progress may open
	// the spoiler. Ids that do not exist come back with Found false.
	CheckViewable(ctx context.Context, ids []int64, progress int) ([]dto.ViewableResult, error)
}

type chapterSpoilerService struct {
	catalog[models.ChapterSpoiler]
	repo *repository.ChapterSpoilerRepo
}

func NewChapterSpoilerService(repo *repository.ChapterSpoilerRepo) ChapterSpoilerService {
	return &chapterSpoilerService{
		catalog: catalog[models.ChapterSpoiler]{
			name:     "chapter spoiler",
			store:    repo,
			validate: validateChapterSpoiler,
		},
		repo: repo,
	}
}

func validateChapterSpoiler(s *models.ChapterSpoiler) error {
	s.Content = strings.TrimSpace(s.Content)
	if s.Content == "" {
		return invalid("content is required")
	}
	if s.ChapterNumber < 1 {
		return invalid("chapter number must be at least 1")
	}
	if s.MinimumChapter < 1 {
		return invalid("minimum chapter must be at least 1")
	}
	if s.Level == "" {
		s.Level = models.SpoilerMinor
	}
	if !s.Level.Valid() {
		return invalid("unknown spoiler level %q", s.Level)
	}
	if s.Category == "" {
		s.Category = models.SpoilerCategoryPlot
	}
	if !s.Category.Valid() {
		return invalid("unknown spoiler category %q", s.Category)
	}
	return nil
}

func renderChapterSpoiler(s models.ChapterSpoiler, v spoiler.Viewer) dto.ChapterSpoilerResponse {
	ok := spoiler.CanView(s.MinimumChapter, v.EffectiveProgress())
	if !ok {
		s.Content = ""
	}
	return dto.ChapterSpoilerResponse{ChapterSpoiler: s, CanView: ok}
}

func (s *chapterSpoilerService) List(ctx context.Context, q repository.ListQuery, f repository.ChapterSpoilerFilter, r Reader) ([]dto.ChapterSpoilerResponse, int64, error) {
	items, total, err := s.repo.ListFiltered(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ChapterSpoilerResponse, 0, len(items))
	for _, it := range items {
		out = append(out, renderChapterSpoiler(it, r.Viewer))
	}
	return out, total, nil
}

func (s *chapterSpoilerService) Get(ctx context.Context, id int64, r Reader) (*dto.ChapterSpoilerResponse, error) {
	cs, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := renderChapterSpoiler(*cs, r.Viewer)
	return &resp, nil
}

// Create stores a reader-submitted spoiler. It starts unverified whoever
// submits it.
func (s *chapterSpoilerService) Create(ctx context.Context, cs *models.ChapterSpoiler, r Reader) error {
	cs.IsVerified = false
	if r.Authenticated() {
		author := r.UserID
		cs.AuthorID = &author
	}
	return s.catalog.Create(ctx, cs)
}

func (s *chapterSpoilerService) Verify(ctx context.Context, id int64, verified bool) error {
	if err := s.repo.SetVerified(ctx, id, verified); err != nil {
		return translate(err, "chapter spoiler")
	}
	slog.InfoContext(ctx, "chapter spoiler verification changed", "id", id, "verified", verified)
	return nil
}

func (s *chapterSpoilerService) CheckViewable(ctx context.Context, ids []int64, progress int) ([]dto.ViewableResult, error) {
	found, err := s.repo.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, translate(err, "chapter spoilers")
	}
	byID := make(map[int64]models.ChapterSpoiler, len(found))
	for _, cs := range found {
		byID[cs.ID] = cs
	}

	// results follow the request order, duplicates included
	results := make([]dto.ViewableResult, 0, len(ids))
	for _, id := range ids {
		cs, ok := byID[id]
		if !ok {
			results = append(results, dto.ViewableResult{ID: id})
			continue
		}
		results = append(results, dto.ViewableResult{
			ID:             id,
			CanView:        spoiler.CanView(cs.MinimumChapter, progress),
			MinimumChapter: cs.MinimumChapter,
			Found:          true,
		})
	}
	return results, nil
}
