package service

import (
	"context"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
)

const minSearchLength = 2

type SearchService interface {
	Search(ctx context.Context, query string, limit int, r Reader) (*dto.SearchResponse, error)
}

type searchService struct {
	repo *repository.SearchRepo
}

func NewSearchService(repo *repository.SearchRepo) SearchService {
	return &searchService{repo: repo}
}

// Search flags every hit whose chapter lies past the reader's progress.
func (s *searchService) Search(ctx context.Context, query string, limit int, r Reader) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchLength {
		return nil, invalid("search query must be at least %d characters", minSearchLength)
	}
	hits, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.SearchResponse{Query: query, Hits: make([]dto.SearchHit, 0, len(hits))}
	for _, h := range hits {
		resp.Hits = append(resp.Hits, dto.SearchHit{
			Kind:          h.Kind,
			ID:            h.ID,
			Title:         h.Title,
			Chapter:       h.Chapter,
			SpoilerHidden: spoiler.ShouldHide(h.Chapter, r.Viewer),
		})
	}
	return resp, nil
}
