package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	assert.NotNil(t, repo, "NewUserRepo should return a non-nil repository")
}

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := t.Context()

	t.Run("CreateUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			user := &models.User{
				ID:       uuid.New(),
				Username: "admin",
				Password: "hashedpassword",
				Name:     "Store Admin",
			}
			now := time.Now()

			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs(user.ID, user.Username, user.Password, user.Name).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateUser(ctx, user)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, now, user.CreatedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Database Error", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`INSERT INTO users`).
				WillReturnError(errors.New("connection refused"))

			// Act
			err := repo.CreateUser(ctx, &models.User{ID: uuid.New()})

			// Assert
			assert.Error(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByUsername", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			now := time.Now()

			mock.ExpectQuery(`SELECT id, username, password, name, created_at, updated_at\s+FROM users\s+WHERE username = \$1`).
				WithArgs("admin").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "name", "created_at", "updated_at"}).
					AddRow(id, "admin", "hashedpassword", "Store Admin", now, now))

			// Act
			user, err := repo.GetUserByUsername(ctx, "admin")

			// Assert
			assert.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, id, user.ID)
			assert.Equal(t, "hashedpassword", user.Password)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT id, username, password, name, created_at, updated_at\s+FROM users\s+WHERE username = \$1`).
				WithArgs("ghost").
				WillReturnError(sql.ErrNoRows)

			// Act
			user, err := repo.GetUserByUsername(ctx, "ghost")

			// Assert
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, user)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByID", func(t *testing.T) {
		t.Run("Success - Password Not Selected", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			now := time.Now()

			mock.ExpectQuery(`SELECT id, username, name, created_at, updated_at\s+FROM users\s+WHERE id = \$1`).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "created_at", "updated_at"}).
					AddRow(id, "admin", "Store Admin", now, now))

			// Act
			user, err := repo.GetUserByID(ctx, id)

			// Assert
			assert.NoError(t, err)
			require.NotNil(t, user)
			assert.Empty(t, user.Password)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
