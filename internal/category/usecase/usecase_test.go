package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func cat(id, parent string, kind model.CategoryKind, fr string) *model.Category {
	c := &model.Category{
		BaseModel:    model.BaseModel{ID: id},
		Kind:         kind,
		Slug:         id,
		IsActive:     true,
		Translations: []model.CategoryTranslation{{Locale: "fr", Name: fr}},
	}
	if parent != "" {
		c.ParentID = strPtr(parent)
	}
	return c
}

func flatFixture() []*model.Category {
	return []*model.Category{
		cat("cardio", "", model.CategoryKindDiscipline, "Cardiologie"),
		cat("ecg", "cardio", model.CategoryKindEquipment, "ECG"),
		cat("holter", "ecg", model.CategoryKindEquipment, "Holter"),
	}
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	frTranslations := []model.CategoryTranslation{{Locale: "fr", Name: "Échographie"}}

	t.Run("derives slug from default locale name", func(t *testing.T) {
		repo := new(MockRepository)
		uc := NewCategoryUseCase(repo, nil, "fr", logger.NewNop())

		repo.On("IsSlugUnique", ctx, "echographie", "").Return(true, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil)

		got, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{
			Kind:         model.CategoryKindDiscipline,
			Translations: frTranslations,
		})
		require.NoError(t, err)
		assert.Equal(t, "echographie", got.Slug)
		assert.Equal(t, "Échographie", got.Name)
		assert.True(t, got.IsActive)
		assert.NotEmpty(t, got.ID)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		input dto.CreateCategoryInput
		setup func(repo *MockRepository)
		want  error
	}{
		{
			name:  "discipline with parent",
			input: dto.CreateCategoryInput{Kind: model.CategoryKindDiscipline, ParentID: strPtr("x"), Translations: frTranslations},
			want:  ErrDisciplineRoot,
		},
		{
			name:  "equipment without parent",
			input: dto.CreateCategoryInput{Kind: model.CategoryKindEquipment, ParentID: strPtr(""), Translations: frTranslations},
			want:  ErrParentRequired,
		},
		{
			name:  "equipment with unknown parent",
			input: dto.CreateCategoryInput{Kind: model.CategoryKindEquipment, ParentID: strPtr("ghost"), Translations: frTranslations},
			setup: func(repo *MockRepository) {
				repo.On("FindByID", ctx, "ghost").Return(nil, nil)
			},
			want: ErrParentNotFound,
		},
		{
			name:  "slug taken",
			input: dto.CreateCategoryInput{Kind: model.CategoryKindDiscipline, Slug: "Imaging", Translations: frTranslations},
			setup: func(repo *MockRepository) {
				repo.On("IsSlugUnique", ctx, "imaging", "").Return(false, nil)
			},
			want: ErrSlugTaken,
		},
		{
			name:  "no translations",
			input: dto.CreateCategoryInput{Kind: model.CategoryKindDiscipline},
			want:  ErrTranslationEmpty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}
			uc := NewCategoryUseCase(repo, nil, "fr", logger.NewNop())

			_, err := uc.CreateCategory(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := NewCategoryUseCase(repo, nil, "fr", logger.NewNop())

	flat := flatFixture()
	repo.On("FindByID", ctx, "ecg").Return(flat[1], nil)
	repo.On("FindByID", ctx, "holter").Return(flat[2], nil)
	repo.On("FindAllFlat", ctx, false).Return(flatFixture(), nil)

	_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:           "ecg",
		ParentID:     strPtr("holter"),
		Kind:         model.CategoryKindEquipment,
		Translations: flat[1].Translations,
	})
	assert.ErrorIs(t, err, ErrCycle)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCategoryKeepsSlug(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := NewCategoryUseCase(repo, nil, "fr", logger.NewNop())

	existing := cat("ecg", "cardio", model.CategoryKindEquipment, "ECG")
	repo.On("FindByID", ctx, "ecg").Return(existing, nil)
	repo.On("FindByID", ctx, "cardio").Return(cat("cardio", "", model.CategoryKindDiscipline, "Cardiologie"), nil)
	repo.On("FindAllFlat", ctx, false).Return(flatFixture(), nil)
	repo.On("IsSlugUnique", ctx, "ecg", "ecg").Return(true, nil)
	repo.On("Update", ctx, existing).Return(nil)

	got, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:           "ecg",
		ParentID:     strPtr("cardio"),
		Kind:         model.CategoryKindEquipment,
		SortOrder:    3,
		IsActive:     false,
		Translations: []model.CategoryTranslation{{Locale: "en", Name: "ECG machines"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ecg", got.Slug)
	assert.Equal(t, 3, got.SortOrder)
	assert.False(t, got.IsActive)
	assert.Equal(t, "ECG machines", got.Name)
	repo.AssertExpectations(t)
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, "x").Return(nil, nil)
		err := NewCategoryUseCase(repo, nil, "fr", logger.NewNop()).DeleteCategory(ctx, "x")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("has children", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, "cardio").Return(flatFixture()[0], nil)
		repo.On("CountChildren", ctx, "cardio").Return(1, nil)
		err := NewCategoryUseCase(repo, nil, "fr", logger.NewNop()).DeleteCategory(ctx, "cardio")
		assert.ErrorIs(t, err, ErrHasChildren)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("has products", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, "holter").Return(flatFixture()[2], nil)
		repo.On("CountChildren", ctx, "holter").Return(0, nil)
		repo.On("CountProducts", ctx, "holter").Return(4, nil)
		err := NewCategoryUseCase(repo, nil, "fr", logger.NewNop()).DeleteCategory(ctx, "holter")
		assert.ErrorIs(t, err, ErrHasProducts)
	})

	t.Run("leaf", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, "holter").Return(flatFixture()[2], nil)
		repo.On("CountChildren", ctx, "holter").Return(0, nil)
		repo.On("CountProducts", ctx, "holter").Return(0, nil)
		repo.On("Delete", ctx, "holter").Return(nil)
		require.NoError(t, NewCategoryUseCase(repo, nil, "fr", logger.NewNop()).DeleteCategory(ctx, "holter"))
		repo.AssertExpectations(t)
	})
}

func TestGetTreeUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	store := cache.NewMemoryStore()
	uc := NewCategoryUseCase(repo, store, "fr", logger.NewNop())

	repo.On("FindAllFlat", ctx, true).Return(flatFixture(), nil).Once()

	first, err := uc.GetTree(ctx, "fr", true)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Cardiologie", first[0].Name)
	assert.Equal(t, "Holter", first[0].Children[0].Children[0].Name)

	second, err := uc.GetTree(ctx, "fr", true)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	repo.AssertNumberOfCalls(t, "FindAllFlat", 1)
}

func TestDeleteClearsTreeAndProductListings(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	store := cache.NewMemoryStore()
	require.NoError(t, store.SetJSON(ctx, "categories:tree:fr:true", []string{"cardio"}, 0))
	require.NoError(t, store.SetJSON(ctx, "products:list:fr:abc", []string{"p1"}, 0))
	require.NoError(t, store.SetJSON(ctx, "rfp:cart:c1", map[string]string{}, 0))

	repo.On("FindByID", ctx, "holter").Return(flatFixture()[2], nil)
	repo.On("CountChildren", ctx, "holter").Return(0, nil)
	repo.On("CountProducts", ctx, "holter").Return(0, nil)
	repo.On("Delete", ctx, "holter").Return(nil)

	require.NoError(t, NewCategoryUseCase(repo, store, "fr", logger.NewNop()).DeleteCategory(ctx, "holter"))

	var dst []string
	assert.ErrorIs(t, store.GetJSON(ctx, "categories:tree:fr:true", &dst), cache.ErrMiss)
	assert.ErrorIs(t, store.GetJSON(ctx, "products:list:fr:abc", &dst), cache.ErrMiss)
	assert.Equal(t, 1, store.Len())
}

func TestDescendantsAndBreadcrumb(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := NewCategoryUseCase(repo, nil, "en", logger.NewNop())
	repo.On("FindAllFlat", ctx, false).Return(flatFixture(), nil)

	ids, err := uc.Descendants(ctx, "cardio")
	require.NoError(t, err)
	assert.Equal(t, []string{"cardio", "ecg", "holter"}, ids)

	_, err = uc.Descendants(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	crumbs, err := uc.Breadcrumb(ctx, "holter", "en")
	require.NoError(t, err)
	require.Len(t, crumbs, 3)
	assert.Equal(t, "Cardiologie", crumbs[0].Name)
}
