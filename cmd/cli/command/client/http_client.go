package client

// http_client.go talks to the REST API on behalf of the CLI commands.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes a 2xx response into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Auth

func (c *HTTPClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, dto.RefreshTokenRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Revoke(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/revoke", nil, dto.RefreshTokenRequest{RefreshToken: refreshToken}, nil)
}

// Account

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProgress(ctx context.Context, chapter int) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/api/users/me/progress", nil, dto.UpdateProgressRequest{UserProgress: &chapter}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetSpoilerOverride stores the override; nil clears it.
func (c *HTTPClient) SetSpoilerOverride(ctx context.Context, chapter *int) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/api/users/me/settings", nil, dto.UpdateSettingsRequest{SpoilerChapterOverride: chapter}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Events

type EventQuery struct {
	ArcID          int64
	GambleID       int64
	CharacterID    int64
	ChapterFrom    int
	ChapterTo      int
	Type           string
	Search         string
	Page           int
	Limit          int
	SpoilerChapter *int
}

func (q EventQuery) values() url.Values {
	v := url.Values{}
	setInt64 := func(key string, n int64) {
		if n > 0 {
			v.Set(key, strconv.FormatInt(n, 10))
		}
	}
	setInt64("arcId", q.ArcID)
	setInt64("gambleId", q.GambleID)
	setInt64("characterId", q.CharacterID)
	setInt64("chapterFrom", int64(q.ChapterFrom))
	setInt64("chapterTo", int64(q.ChapterTo))
	setInt64("page", int64(q.Page))
	setInt64("limit", int64(q.Limit))
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SpoilerChapter != nil {
		v.Set("spoilerChapter", strconv.Itoa(*q.SpoilerChapter))
	}
	return v
}

func (c *HTTPClient) ListEvents(ctx context.Context, q EventQuery) (*dto.PageResponse[dto.EventResponse], error) {
	var out dto.PageResponse[dto.EventResponse]
	if err := c.do(ctx, http.MethodGet, "/api/events", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Timeline(ctx context.Context, q EventQuery) (*dto.TimelineResponse, error) {
	var out dto.TimelineResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/timeline", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Spoilers

func (c *HTTPClient) CheckSpoilers(ctx context.Context, ids []int64, progress *int) (*dto.CheckViewableResponse, error) {
	var out dto.CheckViewableResponse
	req := dto.CheckViewableRequest{SpoilerIDs: ids, UserProgress: progress}
	if err := c.do(ctx, http.MethodPost, "/api/chapter-spoilers/check-viewable", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search

func (c *HTTPClient) Search(ctx context.Context, query string, limit int) (*dto.SearchResponse, error) {
	v := url.Values{"q": {query}}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out dto.SearchResponse
	if err := c.do(ctx, http.MethodGet, "/api/search", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Moderation

// Reviewable names the collections that go through approve/reject.
var Reviewable = []string{"guides", "annotations", "media"}

func checkReviewable(kind string) error {
	for _, k := range Reviewable {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("unknown content kind %q (valid: %s)", kind, strings.Join(Reviewable, ", "))
}

func (c *HTTPClient) ModerationQueue(ctx context.Context) (*dto.ModerationQueue, error) {
	var out dto.ModerationQueue
	if err := c.do(ctx, http.MethodGet, "/api/moderation/queue", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewedItem is the subset of a guide, annotation or media row the CLI prints.
type ReviewedItem struct {
	ID              int64                `json:"id"`
	Status          models.ContentStatus `json:"status"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
}

func (c *HTTPClient) Approve(ctx context.Context, kind string, id int64) (*ReviewedItem, error) {
	if err := checkReviewable(kind); err != nil {
		return nil, err
	}
	var out ReviewedItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/%s/%d/approve", kind, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Reject(ctx context.Context, kind string, id int64, reason string) (*ReviewedItem, error) {
	if err := checkReviewable(kind); err != nil {
		return nil, err
	}
	var out ReviewedItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/%s/%d/reject", kind, id), nil, dto.RejectRequest{Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
