package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware.
func asUser(id string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockReaders struct {
	mock.Mock
}

func (m *MockReaders) ResolveReader(ctx context.Context, userID string, requestOverride *int) (service.Reader, error) {
	args := m.Called(ctx, userID, requestOverride)
	return args.Get(0).(service.Reader), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (*service.TokenPair, *models.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) Revoke(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context, q repository.ListQuery, f repository.EventFilter, r service.Reader) ([]dto.EventResponse, int64, error) {
	args := m.Called(ctx, q, f, r)
	return args.Get(0).([]dto.EventResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventService) Get(ctx context.Context, id int64, r service.Reader) (*dto.EventResponse, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventResponse), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, e *models.Event, characterIDs, tagIDs []int64) (*models.Event, error) {
	args := m.Called(ctx, e, characterIDs, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id int64, apply func(*models.Event), characterIDs, tagIDs *[]int64) (*models.Event, error) {
	args := m.Called(ctx, id, apply, characterIDs, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventService) Timeline(ctx context.Context, f repository.EventFilter, r service.Reader) (*dto.TimelineResponse, error) {
	args := m.Called(ctx, f, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TimelineResponse), args.Error(1)
}

func (m *MockEventService) ArcTimeline(ctx context.Context, arcID int64, r service.Reader) (*dto.TimelineArc, error) {
	args := m.Called(ctx, arcID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TimelineArc), args.Error(1)
}

type MockSeriesService struct {
	mock.Mock
}

func (m *MockSeriesService) Get(ctx context.Context, id int64) (*models.Series, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Series), args.Error(1)
}

func (m *MockSeriesService) Create(ctx context.Context, s *models.Series) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = 1
	}
	return args.Error(0)
}

func (m *MockSeriesService) Update(ctx context.Context, id int64, apply func(*models.Series)) (*models.Series, error) {
	args := m.Called(ctx, id, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	s := args.Get(0).(*models.Series)
	apply(s)
	return s, args.Error(1)
}

func (m *MockSeriesService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSeriesService) List(ctx context.Context, q repository.ListQuery) ([]models.Series, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Series), args.Get(1).(int64), args.Error(2)
}

type MockChapterSpoilerService struct {
	mock.Mock
}

func (m *MockChapterSpoilerService) List(ctx context.Context, q repository.ListQuery, f repository.ChapterSpoilerFilter, r service.Reader) ([]dto.ChapterSpoilerResponse, int64, error) {
	args := m.Called(ctx, q, f, r)
	return args.Get(0).([]dto.ChapterSpoilerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockChapterSpoilerService) Get(ctx context.Context, id int64, r service.Reader) (*dto.ChapterSpoilerResponse, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChapterSpoilerResponse), args.Error(1)
}

func (m *MockChapterSpoilerService) Create(ctx context.Context, s *models.ChapterSpoiler, r service.Reader) error {
	return m.Called(ctx, s, r).Error(0)
}

func (m *MockChapterSpoilerService) Update(ctx context.Context, id int64, apply func(*models.ChapterSpoiler)) (*models.ChapterSpoiler, error) {
	args := m.Called(ctx, id, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChapterSpoiler), args.Error(1)
}

func (m *MockChapterSpoilerService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockChapterSpoilerService) Verify(ctx context.Context, id int64, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *MockChapterSpoilerService) CheckViewable(ctx context.Context, ids []int64, progress int) ([]dto.ViewableResult, error) {
	args := m.Called(ctx, ids, progress)
	return args.Get(0).([]dto.ViewableResult), args.Error(1)
}

type MockGuideService struct {
	mock.Mock
}

func (m *MockGuideService) List(ctx context.Context, q repository.ListQuery, f repository.GuideFilter, r service.Reader) ([]models.Guide, int64, error) {
	args := m.Called(ctx, q, f, r)
	return args.Get(0).([]models.Guide), args.Get(1).(int64), args.Error(2)
}

func (m *MockGuideService) guide(args mock.Arguments) (*models.Guide, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guide), args.Error(1)
}

func (m *MockGuideService) Get(ctx context.Context, id int64, r service.Reader) (*models.Guide, error) {
	return m.guide(m.Called(ctx, id, r))
}

func (m *MockGuideService) Create(ctx context.Context, g *models.Guide, tagIDs []int64, r service.Reader) (*models.Guide, error) {
	return m.guide(m.Called(ctx, g, tagIDs, r))
}

func (m *MockGuideService) Update(ctx context.Context, id int64, apply func(*models.Guide), tagIDs *[]int64, r service.Reader) (*models.Guide, error) {
	return m.guide(m.Called(ctx, id, mock.Anything, tagIDs, r))
}

func (m *MockGuideService) Delete(ctx context.Context, id int64, r service.Reader) error {
	return m.Called(ctx, id, r).Error(0)
}

func (m *MockGuideService) Like(ctx context.Context, id int64, r service.Reader) (*models.Guide, error) {
	return m.guide(m.Called(ctx, id, r))
}

func (m *MockGuideService) Approve(ctx context.Context, id int64) (*models.Guide, error) {
	return m.guide(m.Called(ctx, id))
}

func (m *MockGuideService) Reject(ctx context.Context, id int64, reason string) (*models.Guide, error) {
	return m.guide(m.Called(ctx, id, reason))
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) List(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) UpdateProgress(ctx context.Context, id string, progress int) (*models.User, error) {
	return m.user(m.Called(ctx, id, progress))
}

func (m *MockUserService) UpdateSpoilerOverride(ctx context.Context, id string, override *int) (*models.User, error) {
	return m.user(m.Called(ctx, id, override))
}

func (m *MockUserService) UpdateRole(ctx context.Context, actorID, id string, role models.Role) (*models.User, error) {
	return m.user(m.Called(ctx, actorID, id, role))
}

func (m *MockUserService) ResolveReader(ctx context.Context, userID string, requestOverride *int) (service.Reader, error) {
	args := m.Called(ctx, userID, requestOverride)
	return args.Get(0).(service.Reader), args.Error(1)
}

type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) Get(ctx context.Context, id int64) (*models.Badge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Badge), args.Error(1)
}

func (m *MockBadgeService) Create(ctx context.Context, b *models.Badge) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBadgeService) Update(ctx context.Context, id int64, apply func(*models.Badge)) (*models.Badge, error) {
	args := m.Called(ctx, id, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Badge), args.Error(1)
}

func (m *MockBadgeService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBadgeService) List(ctx context.Context, q repository.ListQuery) ([]models.Badge, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Badge), args.Get(1).(int64), args.Error(2)
}

func (m *MockBadgeService) UserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.UserBadge), args.Error(1)
}

func (m *MockBadgeService) Award(ctx context.Context, userID string, badgeID int64, awardedBy string, reason *string, expiresAt *time.Time) (*models.UserBadge, error) {
	args := m.Called(ctx, userID, badgeID, awardedBy, reason, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBadge), args.Error(1)
}

func (m *MockBadgeService) Revoke(ctx context.Context, userID string, badgeID int64) error {
	return m.Called(ctx, userID, badgeID).Error(0)
}

// mockCatalog covers the CatalogService methods shared by the simple
// catalog mocks below.
type mockCatalog[T any] struct {
	mock.Mock
}

func (m *mockCatalog[T]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockCatalog[T]) Create(ctx context.Context, item *T) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalog[T]) Update(ctx context.Context, id int64, apply func(*T)) (*T, error) {
	args := m.Called(ctx, id, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	item := args.Get(0).(*T)
	apply(item)
	return item, args.Error(1)
}

func (m *mockCatalog[T]) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCharacterService struct {
	mockCatalog[models.Character]
}

func (m *MockCharacterService) List(ctx context.Context, q repository.ListQuery, f repository.CharacterFilter) ([]models.Character, int64, error) {
	args := m.Called(ctx, q, f)
	return args.Get(0).([]models.Character), args.Get(1).(int64), args.Error(2)
}

func (m *MockCharacterService) SetOrganizations(ctx context.Context, id int64, organizationIDs []int64) (*models.Character, error) {
	args := m.Called(ctx, id, organizationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

type MockVolumeService struct {
	mockCatalog[models.Volume]
}

func (m *MockVolumeService) List(ctx context.Context, q repository.ListQuery) ([]models.Volume, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Volume), args.Get(1).(int64), args.Error(2)
}

func (m *MockVolumeService) Chapters(ctx context.Context, volumeID int64, q repository.ListQuery) ([]models.Chapter, int64, error) {
	args := m.Called(ctx, volumeID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Chapter), args.Get(1).(int64), args.Error(2)
}

type MockChapterService struct {
	mockCatalog[models.Chapter]
}

func (m *MockChapterService) List(ctx context.Context, q repository.ListQuery, f repository.ChapterFilter) ([]models.Chapter, int64, error) {
	args := m.Called(ctx, q, f)
	return args.Get(0).([]models.Chapter), args.Get(1).(int64), args.Error(2)
}

func (m *MockChapterService) GetByNumber(ctx context.Context, number int) (*models.Chapter, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, q repository.ListQuery, f repository.MediaFilter, r service.Reader) ([]dto.MediaResponse, int64, error) {
	args := m.Called(ctx, q, f, r)
	return args.Get(0).([]dto.MediaResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaService) Get(ctx context.Context, id int64, r service.Reader) (*dto.MediaResponse, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MediaResponse), args.Error(1)
}

func (m *MockMediaService) media(args mock.Arguments) (*models.Media, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaService) Create(ctx context.Context, media *models.Media, r service.Reader) (*models.Media, error) {
	return m.media(m.Called(ctx, media, r))
}

func (m *MockMediaService) Update(ctx context.Context, id int64, apply func(*models.Media), r service.Reader) (*models.Media, error) {
	return m.media(m.Called(ctx, id, mock.Anything, r))
}

func (m *MockMediaService) Delete(ctx context.Context, id int64, r service.Reader) error {
	return m.Called(ctx, id, r).Error(0)
}

func (m *MockMediaService) Approve(ctx context.Context, id int64) (*models.Media, error) {
	return m.media(m.Called(ctx, id))
}

func (m *MockMediaService) Reject(ctx context.Context, id int64, reason string) (*models.Media, error) {
	return m.media(m.Called(ctx, id, reason))
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
