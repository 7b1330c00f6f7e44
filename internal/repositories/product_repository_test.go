package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	productColumns := []string{"id", "category", "name", "alt_name", "dimensions", "weight_per_metre", "price_per_kg", "price_per_metre", "standard_lengths", "image_url", "in_stock", "visible", "created_at", "updated_at"}

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			product := &models.Product{
				ID:              uuid.New(),
				Category:        "angle",
				Name:            "Aluminium Angle 40x40x3",
				Dimensions:      "40x40x3",
				WeightPerMetre:  0.41,
				PricePerKg:      floatPtr(4.20),
				StandardLengths: []float64{3, 6},
				InStock:         true,
				Visible:         true,
			}
			now := time.Now()

			expectedSQL := regexp.QuoteMeta(`INSERT INTO products (id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible)`)

			mock.ExpectQuery(expectedSQL).
				WithArgs(product.ID, product.Category, product.Name, product.AltName, product.Dimensions, product.WeightPerMetre, 4.20, nil, []byte("[3,6]"), product.ImageURL, product.InStock, product.Visible).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.WithinDuration(t, now, product.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			product := &models.Product{
				ID:             uuid.New(),
				Category:       "angle",
				Name:           "Error Product",
				Dimensions:     "1x1x1",
				WeightPerMetre: 0.1,
				PricePerKg:     floatPtr(1.0),
			}
			dbError := errors.New("database insertion error")

			expectedSQL := regexp.QuoteMeta(`INSERT INTO products`)

			mock.ExpectQuery(expectedSQL).WillReturnError(dbError)

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		productID := uuid.New()
		now := time.Now()

		expectedSQL := regexp.QuoteMeta(`SELECT id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible, created_at, updated_at
		FROM products
		WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			rows := sqlmock.NewRows(productColumns).
				AddRow(productID, "angle", "Aluminium Angle 40x40x3", "", "40x40x3", 0.41, 4.20, nil, []byte("[3,6]"), "", true, true, now, now)

			mock.ExpectQuery(expectedSQL).WithArgs(productID).WillReturnRows(rows)

			// Act
			product, err := repo.GetProductByID(ctx, productID)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, product)
			assert.Equal(t, productID, product.ID)
			assert.Equal(t, []float64{3, 6}, product.StandardLengths)
			require.NotNil(t, product.PricePerKg)
			assert.InDelta(t, 4.20, *product.PricePerKg, 1e-9)
			assert.Nil(t, product.PricePerMetre)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs(productID).WillReturnError(sql.ErrNoRows)

			// Act
			product, err := repo.GetProductByID(ctx, productID)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListProducts", func(t *testing.T) {
		now := time.Now()

		countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE ($1 = false OR visible = true)`)
		listSQL := regexp.QuoteMeta(`SELECT id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible, created_at, updated_at
		FROM products
		WHERE ($1 = false OR visible = true)
		ORDER BY category, name
		LIMIT $2 OFFSET $3`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(countSQL).WithArgs(true).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

			rows := sqlmock.NewRows(productColumns).
				AddRow(uuid.New(), "angle", "Aluminium Angle 40x40x3", "", "40x40x3", 0.41, 4.20, nil, []byte("[3,6]"), "", true, true, now, now).
				AddRow(uuid.New(), "tube", "Aluminium Tube 25x2", "", "25x2", 0.39, nil, 3.10, nil, "", true, true, now, now)

			mock.ExpectQuery(listSQL).WithArgs(true, 20, 0).WillReturnRows(rows)

			// Act
			products, total, err := repo.ListProducts(ctx, 1, 20, true)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 2, total)
			require.Len(t, products, 2)
			assert.Equal(t, "angle", products[0].Category)
			assert.Nil(t, products[1].PricePerKg)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Count Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("count failed")
			mock.ExpectQuery(countSQL).WithArgs(false).WillReturnError(dbError)

			// Act
			products, total, err := repo.ListProducts(ctx, 1, 20, false)

			// Assert
			require.Error(t, err)
			assert.Nil(t, products)
			assert.Zero(t, total)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("BulkUpdatePrices", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`UPDATE products
		SET price_per_kg = COALESCE($1, price_per_kg),
		    weight_per_metre = COALESCE($2, weight_per_metre),
		    price_per_metre = COALESCE($1, price_per_kg) * COALESCE($2, weight_per_metre),
		    updated_at = NOW()
		WHERE COALESCE($1, price_per_kg) IS NOT NULL`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).WithArgs(4.85, nil).WillReturnResult(sqlmock.NewResult(0, 342))

			// Act
			updated, err := repo.BulkUpdatePrices(ctx, floatPtr(4.85), nil)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 342, updated)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("update failed")
			mock.ExpectExec(expectedSQL).WithArgs(nil, 0.5).WillReturnError(dbError)

			// Act
			updated, err := repo.BulkUpdatePrices(ctx, nil, floatPtr(0.5))

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Zero(t, updated)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
