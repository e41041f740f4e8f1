package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/i18n"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) CreatePartner(ctx context.Context, input *dto.CreatePartnerInput) (*model.Partner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Partner), args.Error(1)
}

func (m *mockUseCase) GetPartner(ctx context.Context, id, locale string) (*model.Partner, error) {
	args := m.Called(ctx, id, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Partner), args.Error(1)
}

func (m *mockUseCase) GetPartnerBySlug(ctx context.Context, slug, locale string) (*model.Partner, error) {
	args := m.Called(ctx, slug, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Partner), args.Error(1)
}

func (m *mockUseCase) ListPartners(ctx context.Context, f *dto.PartnerFilters, locale string) ([]model.Partner, int, error) {
	args := m.Called(ctx, f, locale)
	return args.Get(0).([]model.Partner), args.Int(1), args.Error(2)
}

func (m *mockUseCase) UpdatePartner(ctx context.Context, input *dto.UpdatePartnerInput) (*model.Partner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Partner), args.Error(1)
}

func (m *mockUseCase) DeletePartner(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(t *testing.T, uc *mockUseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tr, err := i18n.New("fr")
	require.NoError(t, err)

	h := NewPartnerHandler(uc, logger.NewNop())
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Localize(tr))
	r.GET("/api/partners", h.PublicList)
	r.GET("/api/partners/:slug", h.PublicGet)
	r.POST("/api/admin/partners", h.Create)
	r.PUT("/api/admin/partners/:id", h.Update)
	r.DELETE("/api/admin/partners/:id", h.Delete)
	return r
}

func TestPublicListOnlyActive(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)
	uc.On("ListPartners", mock.Anything, mock.MatchedBy(func(f *dto.PartnerFilters) bool {
		return f.IsActive != nil && *f.IsActive && f.IsFeatured != nil && *f.IsFeatured && f.Page == 2
	}), "en").Return([]model.Partner{{Slug: "dräger", Name: "Dräger"}}, 25, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/partners?featured=true&page=2&locale=en", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Dräger"`)
	assert.Contains(t, w.Body.String(), `"total":25`)
	uc.AssertExpectations(t)
}

func TestPublicGetNotFound(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)
	uc.On("GetPartnerBySlug", mock.Anything, "ghost", "en").Return(nil, apperror.NotFound("PartnerNotFound"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/partners/ghost?locale=en", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Partner not found")
}

func TestCreateRequiresName(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/partners", strings.NewReader(`{"slug":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "CreatePartner", mock.Anything, mock.Anything)
}

func TestCreate(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)
	uc.On("CreatePartner", mock.Anything, mock.MatchedBy(func(in *dto.CreatePartnerInput) bool {
		return in.Name == "Mindray" && len(in.Translations) == 1
	})).Return(&model.Partner{BaseModel: model.BaseModel{ID: "p1"}, Slug: "mindray", Name: "Mindray"}, nil)

	body := `{"name":"Mindray","translations":[{"locale":"fr","description":"Monitorage"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/partners", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"mindray"`)
}

func TestUpdateTakesIDFromPath(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)
	uc.On("UpdatePartner", mock.Anything, mock.MatchedBy(func(in *dto.UpdatePartnerInput) bool {
		return in.ID == "p1" && in.IsActive
	})).Return(&model.Partner{BaseModel: model.BaseModel{ID: "p1"}, Name: "Mindray", IsActive: true}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/partners/p1", strings.NewReader(`{"name":"Mindray","is_active":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestDeleteInUse(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)
	uc.On("DeletePartner", mock.Anything, "p1").Return(apperror.Conflict("PartnerInUse"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/partners/p1?locale=en", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "still referenced by products")
}
