package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponCols = []string{
	"id", "code", "discount_percent", "is_active", "min_order_value", "created_at", "updated_at",
}

func TestRepository_FindByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(couponCols).
			AddRow("c-1", "SAVE10", 10, true, "500", now, now)

		mock.ExpectQuery("SELECT (.+) FROM coupons WHERE code = UPPER").
			WithArgs("save10").
			WillReturnRows(rows)

		c, err := repo.FindByCode(context.Background(), "save10")
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
		assert.Equal(t, 10, c.DiscountPercent)
		require.NotNil(t, c.MinOrderValue)
		assert.Equal(t, "500", c.MinOrderValue.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM coupons WHERE code = UPPER").
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(couponCols))

		_, err := repo.FindByCode(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(couponCols).
			AddRow("c-1", "SAVE10", 10, true, nil, now, now)

		mock.ExpectQuery("INSERT INTO coupons").
			WithArgs("SAVE10", 10, nil).
			WillReturnRows(rows)

		c, err := repo.Create(context.Background(), CreateParams{Code: "SAVE10", DiscountPercent: 10})
		assert.NoError(t, err)
		assert.True(t, c.IsActive)
		assert.Nil(t, c.MinOrderValue)
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO coupons").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), CreateParams{Code: "SAVE10", DiscountPercent: 10})
		assert.ErrorIs(t, err, ErrCouponExists)
	})

	t.Run("OtherError", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO coupons").WillReturnError(errors.New("db error"))
		_, err := repo.Create(context.Background(), CreateParams{Code: "SAVE10", DiscountPercent: 10})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCouponExists)
	})
}

func TestRepository_SetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons").
			WithArgs(false, "SAVE10").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetActive(context.Background(), "SAVE10", false)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons").
			WithArgs(true, "NOPE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetActive(context.Background(), "NOPE", true)
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(couponCols).
		AddRow("c-1", "SAVE10", 10, true, "500", now, now).
		AddRow("c-2", "OLD20", 20, false, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM coupons").WillReturnRows(rows)

	coupons, err := repo.List(context.Background())
	assert.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.False(t, coupons[1].IsActive)
}
