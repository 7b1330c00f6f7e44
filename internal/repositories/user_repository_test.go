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

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := t.Context()

	userColumns := []string{"id", "name", "email", "password", "created_at", "updated_at"}

	t.Run("CreateUser", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			user := &models.User{
				ID:       uuid.New(),
				Name:     "Admin",
				Email:    "admin@alumex.co.uk",
				Password: "$2a$10$hash",
			}
			now := time.Now()

			mock.ExpectQuery(expectedSQL).
				WithArgs(user.ID, user.Name, user.Email, user.Password).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateUser(ctx, user)

			// Assert
			require.NoError(t, err)
			assert.WithinDuration(t, now, user.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("duplicate key")
			mock.ExpectQuery(expectedSQL).WillReturnError(dbError)

			// Act
			err := repo.CreateUser(ctx, &models.User{ID: uuid.New()})

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE email = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			userID := uuid.New()
			now := time.Now()

			rows := sqlmock.NewRows(userColumns).
				AddRow(userID, "Admin", "admin@alumex.co.uk", "$2a$10$hash", now, now)

			mock.ExpectQuery(expectedSQL).WithArgs("admin@alumex.co.uk").WillReturnRows(rows)

			// Act
			user, err := repo.GetUserByEmail(ctx, "admin@alumex.co.uk")

			// Assert
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, userID, user.ID)
			assert.Equal(t, "$2a$10$hash", user.Password)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).WithArgs("nobody@alumex.co.uk").WillReturnError(sql.ErrNoRows)

			// Act
			user, err := repo.GetUserByEmail(ctx, "nobody@alumex.co.uk")

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, user)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			userID := uuid.New()
			now := time.Now()

			rows := sqlmock.NewRows(userColumns).
				AddRow(userID, "Admin", "admin@alumex.co.uk", "$2a$10$hash", now, now)

			mock.ExpectQuery(expectedSQL).WithArgs(userID).WillReturnRows(rows)

			// Act
			user, err := repo.GetUserByID(ctx, userID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
