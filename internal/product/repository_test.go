package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success_WithVariants", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, name, description, price, image_url, created_at, updated_at FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "name", "description", "price", "image_url", "created_at", "updated_at"},
			).AddRow("prod-1", "Tee", "plain tee", "499", "", now, now))

		mock.ExpectQuery("SELECT color, size, stock FROM variants").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"color", "size", "stock"}).
				AddRow("black", "M", 5).
				AddRow("black", "L", 0))

		p, err := repo.GetProduct(context.Background(), "prod-1")
		assert.NoError(t, err)
		assert.Equal(t, "Tee", p.Name)
		require.Len(t, p.Variants, 2)
		assert.Equal(t, 0, p.Variants[1].Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, price, image_url, created_at, updated_at FROM products").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetProduct(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_GetVariantStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	key := VariantKey{Color: "black", Size: "M"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM variants").
			WithArgs("prod-1", "black", "M").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(7))

		stock, err := repo.GetVariantStock(context.Background(), "prod-1", key)
		assert.NoError(t, err)
		assert.Equal(t, 7, stock)
	})

	t.Run("VariantNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM variants").
			WithArgs("prod-1", "black", "M").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}))

		_, err := repo.GetVariantStock(context.Background(), "prod-1", key)
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})
}

func TestRepository_DecrementStockTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	key := VariantKey{Color: "black", Size: "M"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE variants").
			WithArgs(2, "prod-1", "black", "M").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)

		err = repo.DecrementStockTx(context.Background(), tx, "prod-1", key, 2)
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
	})

	t.Run("InsufficientStock_NoRowMatched", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE variants").
			WithArgs(99, "prod-1", "black", "M").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)

		err = repo.DecrementStockTx(context.Background(), tx, "prod-1", key, 99)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.NoError(t, tx.Rollback())
	})

	t.Run("ExecError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE variants").WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)

		err = repo.DecrementStockTx(context.Background(), tx, "prod-1", key, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInsufficientStock)
		assert.NoError(t, tx.Rollback())
	})
}

func TestRepository_SetVariantStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	key := VariantKey{Color: "black", Size: "M"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE variants").
			WithArgs(25, "prod-1", "black", "M").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetVariantStock(context.Background(), "prod-1", key, 25)
		assert.NoError(t, err)
	})

	t.Run("VariantNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE variants").
			WithArgs(25, "prod-1", "black", "M").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetVariantStock(context.Background(), "prod-1", key, 25)
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})
}
