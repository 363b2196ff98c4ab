package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSeriesRouter(svc *MockSeriesService, auth ...gin.HandlerFunc) http.Handler {
	router := setupRouter()
	NewSeriesHandler(svc).RegisterRoutes(router.Group("/series", auth...))
	return router
}

func TestSeriesList_Pagination(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc)
	q := repository.ListQuery{Page: 1, Limit: 2, Sort: "order", Order: "asc", Search: "kaiji"}
	svc.On("List", mock.Anything, q).Return([]models.Series{{ID: 1, Name: "Kaiji"}, {ID: 2, Name: "Kaiji 2"}}, int64(5), nil)

	w := doJSON(router, http.MethodGet, "/series?limit=2&sort=order&search=kaiji", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var page dto.PageResponse[models.Series]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)
}

func TestSeriesList_EmptyIsArray(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc)
	svc.On("List", mock.Anything, mock.Anything).Return([]models.Series(nil), int64(0), nil)

	w := doJSON(router, http.MethodGet, "/series", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":20,"totalPages":0}`, w.Body.String())
}

func TestSeriesGet(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc)
	svc.On("Get", mock.Anything, int64(1)).Return(&models.Series{ID: 1, Name: "Kaiji"}, nil)
	svc.On("Get", mock.Anything, int64(2)).Return(nil, service.ErrNotFound)

	w := doJSON(router, http.MethodGet, "/series/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Kaiji"`)

	w = doJSON(router, http.MethodGet, "/series/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/series/-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeriesWrites_Guarded(t *testing.T) {
	svc := new(MockSeriesService)
	body := dto.CreateSeriesDTO{Name: "Akagi"}

	assert.Equal(t, http.StatusUnauthorized, doJSON(newSeriesRouter(svc), http.MethodPost, "/series", body).Code)
	user := newSeriesRouter(svc, asUser("u-1", models.RoleUser))
	assert.Equal(t, http.StatusForbidden, doJSON(user, http.MethodPost, "/series", body).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(user, http.MethodDelete, "/series/1", nil).Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeriesCreate(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc, asUser("mod-1", models.RoleModerator))
	svc.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Series) bool { return s.Name == "Akagi" && s.Order == 2 })).Return(nil)

	w := doJSON(router, http.MethodPost, "/series", dto.CreateSeriesDTO{Name: "Akagi", Order: 2})

	require.Equal(t, http.StatusCreated, w.Code)
	var got models.Series
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	svc.AssertExpectations(t)
}

func TestSeriesCreate_Conflict(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc, asUser("mod-1", models.RoleModerator))
	svc.On("Create", mock.Anything, mock.Anything).Return(service.ErrConflict)

	w := doJSON(router, http.MethodPost, "/series", dto.CreateSeriesDTO{Name: "Kaiji"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSeriesUpdate_AppliesPartialBody(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc, asUser("admin-1", models.RoleAdmin))
	desc := "old"
	svc.On("Update", mock.Anything, int64(1), mock.Anything).Return(&models.Series{ID: 1, Name: "Kaiji", Order: 1, Description: &desc}, nil)

	w := doJSON(router, http.MethodPut, "/series/1", map[string]any{"order": 4})

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Series
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Kaiji", got.Name)
	assert.Equal(t, 4, got.Order)
	require.NotNil(t, got.Description)
	assert.Equal(t, "old", *got.Description)
}

func TestSeriesDelete(t *testing.T) {
	svc := new(MockSeriesService)
	router := newSeriesRouter(svc, asUser("mod-1", models.RoleModerator))
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)

	w := doJSON(router, http.MethodDelete, "/series/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
