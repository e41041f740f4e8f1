package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
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

func (m *mockUseCase) Upload(ctx context.Context, input *dto.UploadInput) (*model.Media, error) {
	// read the body so it can be matched
	body, _ := io.ReadAll(input.Content)
	args := m.Called(ctx, input.FileName, string(body))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *mockUseCase) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *mockUseCase) LookupByHash(ctx context.Context, hash string) (*model.Media, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func setupRouter(t *testing.T, uc *mockUseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tr, err := i18n.New("fr")
	require.NoError(t, err)

	h := NewMediaHandler(uc, logger.NewNop())
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Localize(tr))
	r.POST("/api/admin/uploads", h.Upload)
	return r
}

func multipartBody(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name      string
		duplicate bool
		want      int
	}{
		{name: "new content", want: http.StatusCreated},
		{name: "known content", duplicate: true, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			r := setupRouter(t, uc)
			uc.On("Upload", mock.Anything, "ecg.jpg", "jpeg bytes").
				Return(&model.Media{ID: "m1", URL: "/uploads/ab/abc.jpg", Duplicate: tt.duplicate}, nil)

			body, contentType := multipartBody(t, "file", "ecg.jpg", "jpeg bytes")
			req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestUploadWithoutFile(t *testing.T) {
	uc := new(mockUseCase)
	r := setupRouter(t, uc)

	body, contentType := multipartBody(t, "other", "x.txt", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Le fichier envoyé est vide")
	uc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}
