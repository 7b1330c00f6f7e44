package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/repositories/mocks"
	service "github.com/alumex/aluminium-shop-platform/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

func newUserService(t *testing.T) (service.UserService, *mocks.UserRepository, *mocks.RateLimitRepository) {
	t.Helper()

	mockRepo := new(mocks.UserRepository)
	mockRateLimit := new(mocks.RateLimitRepository)

	return service.NewUserService(mockRepo, mockRateLimit, testJWTKey), mockRepo, mockRateLimit
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	adminUser := &models.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@alumex.co.uk",
		Password: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockRateLimit := newUserService(t)
		mockRateLimit.On("CheckLoginRateLimit", ctx, adminUser.Email).Return(true, 4, 0, nil).Once()
		mockRepo.On("GetUserByEmail", ctx, adminUser.Email).Return(adminUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: adminUser.Email, Password: "correct-password"})

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)

		// The token must verify with the service's own key and carry the
		// user identity.
		claims := &models.Claims{}
		parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
			return testJWTKey, nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, adminUser.ID, claims.UserID)
		assert.Equal(t, adminUser.Email, claims.Email)

		mockRepo.AssertExpectations(t)
		mockRateLimit.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockRateLimit := newUserService(t)
		mockRateLimit.On("CheckLoginRateLimit", ctx, adminUser.Email).Return(true, 3, 0, nil).Once()
		mockRepo.On("GetUserByEmail", ctx, adminUser.Email).Return(adminUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: adminUser.Email, Password: "wrong-password"})

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange: same response as a wrong password, nothing leaks about
		// which accounts exist.
		userService, mockRepo, mockRateLimit := newUserService(t)
		mockRateLimit.On("CheckLoginRateLimit", ctx, "nobody@alumex.co.uk").Return(true, 4, 0, nil).Once()
		mockRepo.On("GetUserByEmail", ctx, "nobody@alumex.co.uk").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "nobody@alumex.co.uk", Password: "whatever"})

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockRateLimit := newUserService(t)
		mockRateLimit.On("CheckLoginRateLimit", ctx, adminUser.Email).Return(false, 0, 12, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: adminUser.Email, Password: "correct-password"})

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, 12, resp.RetryAfter)
		mockRepo.AssertNotCalled(t, "GetUserByEmail", ctx, adminUser.Email)
	})

	t.Run("Failure - Rate Limit Backend Error", func(t *testing.T) {
		// Arrange
		userService, _, mockRateLimit := newUserService(t)
		mockRateLimit.On("CheckLoginRateLimit", ctx, adminUser.Email).Return(false, 0, 0, errors.New("redis down")).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: adminUser.Email, Password: "correct-password"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)
		expected := &models.User{ID: userID, Email: "admin@alumex.co.uk"}
		mockRepo.On("GetUserByID", ctx, userID).Return(expected, nil).Once()

		// Act
		user, err := userService.GetUserByID(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)
		mockRepo.On("GetUserByID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		user, err := userService.GetUserByID(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
