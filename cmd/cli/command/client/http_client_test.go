package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "baku", req.Username)
		writeJSON(w, http.StatusOK, dto.AuthResponse{
			AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900,
			User: &dto.UserResponse{Username: "baku", Role: models.RoleUser},
		})
	})

	resp, err := c.Login(context.Background(), dto.LoginRequest{Username: "baku", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "baku", resp.User.Username)
}

func TestErrorResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Username: "baku", Password: "bad"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, err.Error(), "Bad Gateway")
	assert.False(t, IsUnauthorized(err))
}

func TestBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, dto.UserResponse{Username: "baku", UserProgress: 42})
	})
	c.SetToken("tok")

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, me.UserProgress)
}

func TestSetSpoilerOverride_SendsNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		v, ok := body["spoilerChapterOverride"]
		assert.True(t, ok)
		assert.Nil(t, v)
		writeJSON(w, http.StatusOK, dto.UserResponse{})
	})

	_, err := c.SetSpoilerOverride(context.Background(), nil)
	require.NoError(t, err)
}

func TestListEvents_Query(t *testing.T) {
	override := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "3", q.Get("arcId"))
		assert.Equal(t, "10", q.Get("chapterFrom"))
		assert.Equal(t, "reveal", q.Get("type"))
		assert.Equal(t, "0", q.Get("spoilerChapter"))
		assert.False(t, q.Has("gambleId"))
		assert.False(t, q.Has("chapterTo"))
		writeJSON(w, http.StatusOK, dto.NewPage([]dto.EventResponse{{SpoilerHidden: true}}, 1, 1, 20))
	})

	page, err := c.ListEvents(context.Background(), EventQuery{ArcID: 3, ChapterFrom: 10, Type: "reveal", SpoilerChapter: &override})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.True(t, page.Data[0].SpoilerHidden)
}

func TestCheckSpoilers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chapter-spoilers/check-viewable", r.URL.Path)
		var req dto.CheckViewableRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{2, 1}, req.SpoilerIDs)
		assert.Nil(t, req.UserProgress)
		writeJSON(w, http.StatusOK, dto.CheckViewableResponse{UserProgress: 5, Results: []dto.ViewableResult{{ID: 2}, {ID: 1}}})
	})

	resp, err := c.CheckSpoilers(context.Background(), []int64{2, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.UserProgress)
	assert.Len(t, resp.Results, 2)
}

func TestReview(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/guides/4/approve":
			writeJSON(w, http.StatusOK, ReviewedItem{ID: 4, Status: models.StatusApproved})
		case "/api/media/5/reject":
			var req dto.RejectRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, ReviewedItem{ID: 5, Status: models.StatusRejected, RejectionReason: &req.Reason})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	item, err := c.Approve(ctx, "guides", 4)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, item.Status)

	item, err = c.Reject(ctx, "media", 5, "blurry")
	require.NoError(t, err)
	require.NotNil(t, item.RejectionReason)
	assert.Equal(t, "blurry", *item.RejectionReason)

	_, err = c.Approve(ctx, "events", 1)
	assert.ErrorContains(t, err, "unknown content kind")
}

func TestRevoke_NoBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.Revoke(context.Background(), "refresh"))
}
