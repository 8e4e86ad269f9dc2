package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fekuna/omnipos-pricing-service/internal/lookup"
	lookupmocks "github.com/fekuna/omnipos-pricing-service/internal/lookup/mocks"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/mocks"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUseCase(repo *mocks.MockRepository) *sparePartUseCase {
	return NewSparePartUseCase(repo, nil, nil, logger.NewNop()).(*sparePartUseCase)
}

func TestCreateSparePartValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input dto.SparePartInput
		field string
	}{
		{
			name:  "short model number",
			input: dto.SparePartInput{Make: "Dell", ModelNumber: "X"},
			field: "model_number",
		},
		{
			name: "negative price",
			input: dto.SparePartInput{
				Make:        "Dell",
				ModelNumber: "Latitude",
				Prices:      map[string]decimal.NullDecimal{"hinge": decimal.NewNullDecimal(decimal.NewFromInt(-1))},
			},
			field: "prices.hinge",
		},
		{
			name: "unknown component",
			input: dto.SparePartInput{
				Make:        "Dell",
				ModelNumber: "Latitude",
				Prices:      map[string]decimal.NullDecimal{"speaker": decimal.NewNullDecimal(decimal.NewFromInt(10))},
			},
			field: "prices.speaker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewMockRepository(t)
			res, err := newUseCase(repo).CreateSparePart(context.Background(), &tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
			assert.Nil(t, res)
		})
	}
}

func TestCreateSparePart(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockRepository(t)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.SparePart")).Return(nil).Once()

	res, err := newUseCase(repo).CreateSparePart(context.Background(), &dto.SparePartInput{
		Make:        "Dell",
		ModelNumber: "Latitude 5420",
		Prices: map[string]decimal.NullDecimal{
			"frontPanel": decimal.NewNullDecimal(decimal.RequireFromString("1500.005")),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dell/Latitude 5420", *res.ProductName)
	assert.True(t, res.FrontPanel.Valid)
	assert.True(t, decimal.RequireFromString("1500.01").Equal(res.FrontPanel.Decimal))
	assert.False(t, res.Battery.Valid)
}

func TestBulkUploadSpareParts(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockRepository(t)
	rows := []sheet.Row{
		{
			"Make":               "Dell",
			"Model No":           "Latitude 5420",
			"Front Panel(Bazel)": 1500,
			"Screen Touch":       "n/a",
			"Batt":               "900",
		},
		{"Make": gofakeit.Company()},
	}

	var stored []model.SparePart
	repo.On("BulkCreate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]model.SparePart) }).
		Return(1, nil).Once()

	res, err := newUseCase(repo).BulkUpload(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, &model.BulkResult{Count: 1, RejectedCount: 1}, res)

	require.Len(t, stored, 1)
	part := stored[0]
	assert.Equal(t, "Latitude 5420", part.ModelNumber)
	assert.True(t, decimal.NewFromInt(1500).Equal(part.FrontPanel.Decimal))
	assert.True(t, decimal.NewFromInt(900).Equal(part.Battery.Decimal))
	assert.False(t, part.ScreenTouch.Valid)
	assert.False(t, part.Hinge.Valid)
}

func TestBulkUploadSparePartsNoValidRows(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockRepository(t)
	_, err := newUseCase(repo).BulkUpload(context.Background(), []sheet.Row{{"Model": "T480"}})
	assert.ErrorIs(t, err, model.ErrNoValidMasterRows)
}

func TestMasterWritesInvalidateLookups(t *testing.T) {
	t.Parallel()

	id := gofakeit.UUID()
	input := dto.SparePartInput{Make: "Dell", ModelNumber: "Latitude 5420"}

	tests := []struct {
		name   string
		commit string
		setup  func(repo *mocks.MockRepository)
		run    func(ctx context.Context, uc *sparePartUseCase) error
	}{
		{
			name:   "create",
			commit: "Create",
			setup: func(repo *mocks.MockRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			},
			run: func(ctx context.Context, uc *sparePartUseCase) error {
				_, err := uc.CreateSparePart(ctx, &input)
				return err
			},
		},
		{
			name:   "update",
			commit: "Update",
			setup: func(repo *mocks.MockRepository) {
				repo.On("FindByID", mock.Anything, id).Return(&model.SparePart{BaseModel: model.BaseModel{ID: id}}, nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
			run: func(ctx context.Context, uc *sparePartUseCase) error {
				_, err := uc.UpdateSparePart(ctx, id, &input)
				return err
			},
		},
		{
			name:   "delete",
			commit: "Delete",
			setup: func(repo *mocks.MockRepository) {
				repo.On("Delete", mock.Anything, id).Return(nil).Once()
			},
			run: func(ctx context.Context, uc *sparePartUseCase) error {
				return uc.DeleteSparePart(ctx, id)
			},
		},
		{
			name:   "bulk delete",
			commit: "BulkDelete",
			setup: func(repo *mocks.MockRepository) {
				repo.On("BulkDelete", mock.Anything, []string{id}).Return(int64(1), nil).Once()
			},
			run: func(ctx context.Context, uc *sparePartUseCase) error {
				_, err := uc.BulkDeleteSpareParts(ctx, []string{id})
				return err
			},
		},
		{
			name:   "bulk upload",
			commit: "BulkCreate",
			setup: func(repo *mocks.MockRepository) {
				repo.On("BulkCreate", mock.Anything, mock.Anything).Return(1, nil).Once()
			},
			run: func(ctx context.Context, uc *sparePartUseCase) error {
				_, err := uc.BulkUpload(ctx, []sheet.Row{{"Make": "Dell", "Model": "Latitude 5420", "Hinge": 400}})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewMockRepository(t)
			tt.setup(repo)

			invalidated := false
			inv := lookupmocks.NewMockInvalidator(t)
			inv.On("Invalidate", mock.Anything, lookup.SparePartKind).
				Run(func(mock.Arguments) {
					assert.True(t, lo.ContainsBy(repo.Calls, func(c mock.Call) bool { return c.Method == tt.commit }))
					invalidated = true
				}).
				Return(nil).Once()

			uc := NewSparePartUseCase(repo, nil, inv, logger.NewNop()).(*sparePartUseCase)
			require.NoError(t, tt.run(context.Background(), uc))
			assert.True(t, invalidated, "lookup cache must be invalidated before the write returns")
		})
	}

	t.Run("invalidation failure does not fail the upload", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockRepository(t)
		repo.On("BulkCreate", mock.Anything, mock.Anything).Return(1, nil).Once()
		inv := lookupmocks.NewMockInvalidator(t)
		inv.On("Invalidate", mock.Anything, lookup.SparePartKind).Return(errors.New("redis: i/o timeout")).Once()

		uc := NewSparePartUseCase(repo, nil, inv, logger.NewNop())
		res, err := uc.BulkUpload(context.Background(), []sheet.Row{{"Make": "Dell", "Model": "Latitude 5420"}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
	})
}
