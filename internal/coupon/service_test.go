package coupon

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Coupon, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, code string, active bool) error {
	args := m.Called(ctx, code, active)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Coupon), args.Error(1)
}

// --- Tests ---

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := &Coupon{Code: "SAVE10", DiscountPercent: 10, IsActive: true}
		mockRepo.On("FindByCode", ctx, "SAVE10").Return(expected, nil)

		c, err := svc.Lookup(ctx, "SAVE10")
		assert.NoError(t, err)
		assert.Equal(t, expected, c)
	})

	t.Run("Inactive", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByCode", ctx, "OLD").Return(&Coupon{Code: "OLD", IsActive: false}, nil)

		_, err := svc.Lookup(ctx, "OLD")
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByCode", ctx, "NOPE").Return(nil, ErrCouponNotFound)

		_, err := svc.Lookup(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Lookup(ctx, "   ")
		assert.ErrorIs(t, err, ErrCouponNotFound)
		mockRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_UppercasesCode", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p CreateParams) bool {
			return p.Code == "SAVE10" && p.DiscountPercent == 10
		})).Return(&Coupon{Code: "SAVE10", DiscountPercent: 10, IsActive: true}, nil)

		c, err := svc.Create(ctx, CreateParams{Code: " save10 ", DiscountPercent: 10})
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DiscountOutOfRange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Create(ctx, CreateParams{Code: "ZERO", DiscountPercent: 0})
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = svc.Create(ctx, CreateParams{Code: "BIG", DiscountPercent: 101})
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NegativeMinOrderValue", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		neg := decimal.NewFromInt(-1)
		_, err := svc.Create(ctx, CreateParams{Code: "NEG", DiscountPercent: 10, MinOrderValue: &neg})
		assert.Error(t, err)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.Anything).Return(nil, ErrCouponExists)

		_, err := svc.Create(ctx, CreateParams{Code: "SAVE10", DiscountPercent: 10})
		assert.ErrorIs(t, err, ErrCouponExists)
	})
}

func TestService_SetActive(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("SetActive", ctx, "SAVE10", false).Return(nil)

	err := svc.SetActive(ctx, "SAVE10", false)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
