package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alumex/aluminium-shop-platform/internal/api/handlers"
	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/services/mocks"
	"github.com/alumex/aluminium-shop-platform/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCreateProductHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateProductRequest{
			Category:       "angle",
			Name:           "Aluminium Angle 40x40x3",
			Dimensions:     "40x40x3",
			WeightPerMetre: 0.41,
			PricePerKg:     floatPtr(4.20),
			InStock:        true,
			Visible:        true,
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/admin/products", bytes.NewReader(reqBodyBytes), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")

		expectedProduct := &models.Product{
			ID:             uuid.New(),
			Category:       reqBody.Category,
			Name:           reqBody.Name,
			Dimensions:     reqBody.Dimensions,
			WeightPerMetre: reqBody.WeightPerMetre,
			PricePerKg:     reqBody.PricePerKg,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		mockProductService.On("CreateProduct", mock.Anything, &reqBody).Return(expectedProduct, nil).Once()

		// Act
		handler := productHandler.CreateProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		// Arrange
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/admin/products", bytes.NewReader([]byte("{invalid json")), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")

		// Act
		handler := productHandler.CreateProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Validation Error", func(t *testing.T) {
		// Arrange: name missing, weight missing.
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		reqBody := models.CreateProductRequest{Category: "angle"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/admin/products", bytes.NewReader(reqBodyBytes), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")

		// Act
		handler := productHandler.CreateProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestGetProductHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productID := uuid.New()
		expectedProduct := &models.Product{ID: productID, Name: "Aluminium Angle 40x40x3"}

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/"+productID.String(), nil, map[string]string{"id": productID.String()})

		mockProductService.On("GetProductByID", mock.Anything, productID).Return(expectedProduct, nil).Once()

		// Act
		handler := productHandler.GetProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data models.Product `json:"data"`
		}
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, productID, resp.Data.ID)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/not-a-uuid", nil, map[string]string{"id": "not-a-uuid"})

		// Act
		handler := productHandler.GetProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		productID := uuid.New()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products/"+productID.String(), nil, map[string]string{"id": productID.String()})

		mockProductService.On("GetProductByID", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		handler := productHandler.GetProduct()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListProductsHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	t.Run("Success - Public Listing Is Visible Only", func(t *testing.T) {
		// Arrange
		expected := []*models.Product{{ID: uuid.New(), Name: "Aluminium Angle 40x40x3", Visible: true}}

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/products?page=1&pageSize=20", nil, nil)

		mockProductService.On("ListProducts", mock.Anything, 1, 20, true).Return(expected, 1, nil).Once()

		// Act
		handler := productHandler.ListProducts(true)
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockProductService.AssertExpectations(t)
	})
}

func TestBulkUpdatePricesHandler(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reqBody := models.BulkPriceUpdateRequest{PricePerKg: floatPtr(4.85)}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/admin/products/prices", bytes.NewReader(reqBodyBytes), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")

		mockProductService.On("BulkUpdatePrices", mock.Anything, &reqBody).Return(342, nil).Once()

		// Act
		handler := productHandler.BulkUpdatePrices()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data models.BulkPriceUpdateResponse `json:"data"`
		}
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, 342, resp.Data.UpdatedCount)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		reqBody := models.BulkPriceUpdateRequest{}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/admin/products/prices", bytes.NewReader(reqBodyBytes), uuid.New(), nil)
		req.Header.Set("Content-Type", "application/json")

		mockProductService.On("BulkUpdatePrices", mock.Anything, &reqBody).
			Return(0, appErrors.ValidationError("At least one of price_per_kg or weight_per_metre is required")).Once()

		// Act
		handler := productHandler.BulkUpdatePrices()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
