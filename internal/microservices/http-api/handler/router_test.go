package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mangafandb/internal/cache"
	"mangafandb/internal/config"
	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"
	"mangafandb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestAPI wires the real services over an in-memory database.
func newTestAPI(t *testing.T, checks map[string]Check) (http.Handler, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	store := cache.NewMemoryCache(64, time.Minute)
	cfg := &config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}

	users := repository.NewUserRepository(db)
	notifications := repository.NewNotificationRepository(db)
	arcs := repository.NewArcRepo(db)
	characters := repository.NewCharacterRepo(db)
	orgs := repository.NewOrganizationRepo(db)
	tags := repository.NewTagRepo(db)
	chapters := repository.NewChapterRepo(db)
	events := repository.NewEventRepo(db)
	guides := repository.NewGuideRepo(db)
	annotations := repository.NewAnnotationRepo(db)
	media := repository.NewMediaRepo(db)
	badges := repository.NewBadgeRepo(db)

	auth := service.NewAuthService(users, repository.NewRefreshTokenRepository(db), cfg)
	userSvc := service.NewUserService(users)
	badgeSvc := service.NewBadgeService(badges, users)
	eventSvc := service.NewEventService(events, arcs, characters, tags, store, time.Minute, 5)

	if checks == nil {
		checks = map[string]Check{"cache": store.Ping}
	}
	router := NewRouter(RouterConfig{
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}, auth, Handlers{
		Auth:            NewAuthHandler(auth),
		Users:           NewUserHandler(userSvc, badgeSvc),
		Badges:          NewBadgeHandler(badgeSvc),
		Notifications:   NewNotificationHandler(service.NewNotificationService(notifications)),
		Series:          NewSeriesHandler(service.NewSeriesService(repository.NewSeriesRepo(db), store, time.Minute)),
		Volumes:         NewVolumeHandler(service.NewVolumeService(repository.NewVolumeRepo(db), chapters)),
		Arcs:            NewArcHandler(service.NewArcService(arcs, store, time.Minute), eventSvc, userSvc),
		Chapters:        NewChapterHandler(service.NewChapterService(chapters)),
		Characters:      NewCharacterHandler(service.NewCharacterService(characters, orgs, store), eventSvc, userSvc),
		Organizations:   NewOrganizationHandler(service.NewOrganizationService(orgs)),
		Tags:            NewTagHandler(service.NewTagService(tags, store)),
		Gambles:         NewGambleHandler(service.NewGambleService(repository.NewGambleRepo(db), characters, store), eventSvc, userSvc),
		Events:          NewEventHandler(eventSvc, userSvc),
		ChapterSpoilers: NewChapterSpoilerHandler(service.NewChapterSpoilerService(repository.NewChapterSpoilerRepo(db)), userSvc),
		Guides:          NewGuideHandler(service.NewGuideService(guides, tags, notifications), userSvc),
		Annotations:     NewAnnotationHandler(service.NewAnnotationService(annotations, notifications), userSvc),
		Media:           NewMediaHandler(service.NewMediaService(media, notifications), userSvc),
		Moderation:      NewModerationHandler(service.NewModerationService(guides, annotations, media, events)),
		Search:          NewSearchHandler(service.NewSearchService(repository.NewSearchRepo(db)), userSvc),
		Health:          NewHealthHandler(checks),
	})
	return router, db
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestAPI(t, nil)
	w := call(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"cache":"ok"}}`, w.Body.String())

	down, _ := newTestAPI(t, map[string]Check{
		"database": func(context.Context) error { return errors.New("connection refused") },
	})
	w = call(down, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestRouter_NoRoute(t *testing.T) {
	router, _ := newTestAPI(t, nil)
	w := call(router, http.MethodGet, "/api/manga", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestRouter_InvalidTokenOnPublicRoute(t *testing.T) {
	router, _ := newTestAPI(t, nil)
	w := call(router, http.MethodGet, "/api/events", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(router, http.MethodGet, "/api/events", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_EventFlow(t *testing.T) {
	router, db := newTestAPI(t, nil)

	w := call(router, http.MethodPost, "/api/auth/register", "", `{"username":"baku","password":"password123","email":"baku@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "baku").Update("role", models.RoleModerator).Error)

	w = call(router, http.MethodPost, "/api/auth/login", "", `{"username":"baku@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	require.NotNil(t, login.User)
	assert.Equal(t, models.RoleModerator, login.User.Role)

	w = call(router, http.MethodPost, "/api/events", "", `{"title":"Entering","type":"gamble","chapterNumber":12}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(router, http.MethodPost, "/api/events", login.AccessToken, `{"title":"Entering","type":"gamble","chapterNumber":12}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(router, http.MethodPost, "/api/events", login.AccessToken, `{"title":"Loophole","description":"The rule is exposed.","type":"reveal","chapterNumber":28}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(router, http.MethodGet, "/api/events?spoilerChapter=15", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.PageResponse[dto.EventResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, int64(2), page.Total)
	assert.Equal(t, "Entering", page.Data[0].Title)
	assert.False(t, page.Data[0].SpoilerHidden)
	assert.Equal(t, "Loophole", page.Data[1].Title)
	assert.True(t, page.Data[1].SpoilerHidden)
	assert.Empty(t, page.Data[1].Description)

	w = call(router, http.MethodPatch, "/api/users/me/progress", login.AccessToken, `{"userProgress":30}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(router, http.MethodGet, "/api/events", login.AccessToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.False(t, page.Data[1].SpoilerHidden)
	assert.Equal(t, "The rule is exposed.", page.Data[1].Description)
}
