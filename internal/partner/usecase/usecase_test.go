package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePartner(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := NewPartnerUseCase(repo, "fr", logger.NewNop())

	repo.On("IsSlugUnique", ctx, "drager-medical", "").Return(true, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Partner")).Return(nil)

	p, err := uc.CreatePartner(ctx, &dto.CreatePartnerInput{
		Name: "Dräger Medical",
		Translations: []model.PartnerTranslation{
			{Locale: "en", Description: "Respiratory care"},
			{Locale: "fr", Description: "Soins respiratoires"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "drager-medical", p.Slug)
	assert.Equal(t, "Soins respiratoires", p.Description)
	assert.True(t, p.IsActive)
}

func TestUpdatePartnerSlugConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := NewPartnerUseCase(repo, "fr", logger.NewNop())

	repo.On("FindByID", ctx, "p1").Return(&model.Partner{BaseModel: model.BaseModel{ID: "p1"}, Slug: "mindray", Name: "Mindray"}, nil)
	repo.On("IsSlugUnique", ctx, "philips", "p1").Return(false, nil)

	_, err := uc.UpdatePartner(ctx, &dto.UpdatePartnerInput{ID: "p1", Slug: "philips", Name: "Mindray"})
	assert.ErrorIs(t, err, ErrSlugTaken)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePartner(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		found    *model.Partner
		products int
		want     error
	}{
		{name: "missing", found: nil, want: ErrNotFound},
		{name: "referenced", found: &model.Partner{BaseModel: model.BaseModel{ID: "p1"}}, products: 3, want: ErrInUse},
		{name: "free", found: &model.Partner{BaseModel: model.BaseModel{ID: "p1"}}, products: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.found == nil {
				repo.On("FindByID", ctx, "p1").Return(nil, nil)
			} else {
				repo.On("FindByID", ctx, "p1").Return(tt.found, nil)
				repo.On("CountProducts", ctx, "p1").Return(tt.products, nil)
			}
			repo.On("Delete", ctx, "p1").Return(nil).Maybe()

			err := NewPartnerUseCase(repo, "fr", logger.NewNop()).DeletePartner(ctx, "p1")
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				repo.AssertNotCalled(t, "Delete", ctx, "p1")
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "Delete", ctx, "p1")
		})
	}
}

func TestGetPartnerBySlugHidesInactive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("FindBySlug", ctx, "old").Return(&model.Partner{Slug: "old", IsActive: false}, nil)

	_, err := NewPartnerUseCase(repo, "fr", logger.NewNop()).GetPartnerBySlug(ctx, "old", "en")
	assert.ErrorIs(t, err, ErrNotFound)
}
