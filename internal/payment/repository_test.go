package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordCols = []string{
	"id", "user_id", "order_id", "provider", "status", "amount", "currency",
	"gateway_order_id", "gateway_payment_id", "gateway_signature",
	"method", "note", "coupon_code", "shipping", "quote", "created_at", "updated_at",
}

func createdRecordRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(recordCols).
		AddRow("pay-1", "user-1", nil, "razorpay", "created", "1100", "INR",
			"order_abc", nil, nil, nil, nil, "SAVE10", []byte(`{"name":"A"}`),
			[]byte(`{"subtotal":"1000","discount":"100","shipping":"200","total":"1100"}`), now, now)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(createdRecordRow())

		rec, err := repo.Create(context.Background(), CreateParams{
			UserID:         "user-1",
			Provider:       "razorpay",
			GatewayOrderID: "order_abc",
		})
		assert.NoError(t, err)
		assert.Equal(t, StatusCreated, rec.Status)
		assert.Nil(t, rec.OrderID)
		require.NotNil(t, rec.CouponCode)
		assert.Equal(t, "SAVE10", *rec.CouponCode)
		assert.JSONEq(t, `{"subtotal":"1000","discount":"100","shipping":"200","total":"1100"}`, string(rec.QuoteJSON))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").WillReturnError(errors.New("db error"))
		_, err := repo.Create(context.Background(), CreateParams{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByGatewayOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments").
			WithArgs("order_abc").
			WillReturnRows(createdRecordRow())

		rec, err := repo.GetByGatewayOrderID(context.Background(), "order_abc")
		assert.NoError(t, err)
		assert.Equal(t, "order_abc", rec.GatewayOrderID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(recordCols))

		_, err := repo.GetByGatewayOrderID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestRepository_ClaimPaidTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("WinsClaim", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs("order_abc", "pay_xyz", "sig", "ord-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)

		claimed, err := repo.ClaimPaidTx(context.Background(), tx, "order_abc", "pay_xyz", "sig", "ord-1")
		assert.NoError(t, err)
		assert.True(t, claimed)
		assert.NoError(t, tx.Commit())
	})

	t.Run("AlreadySettled", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs("order_abc", "pay_xyz", "sig", "ord-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)

		claimed, err := repo.ClaimPaidTx(context.Background(), tx, "order_abc", "pay_xyz", "sig", "ord-1")
		assert.NoError(t, err)
		assert.False(t, claimed)
		assert.NoError(t, tx.Rollback())
	})
}

func TestRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE payments").
		WithArgs("order_abc", "signature mismatch").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), "order_abc", "signature mismatch")
	assert.NoError(t, err)
}

func TestRepository_ListFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(recordCols).
		AddRow("pay-1", "user-1", nil, "razorpay", "failed", "1100", "INR",
			"order_abc", nil, nil, nil, "stock exhausted", nil, nil, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM payments").WillReturnRows(rows)

	records, err := repo.ListFailed(context.Background())
	assert.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusFailed, records[0].Status)
	require.NotNil(t, records[0].Note)
	assert.Equal(t, "stock exhausted", *records[0].Note)
}
