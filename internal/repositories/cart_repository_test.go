package repository_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alamlaptops/storefront/internal/cart"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewCartRepo(client, 720*time.Hour)
	ctx := t.Context()

	lines := []cart.Line{
		{ProductID: "3d0f8e7a-0001-4a55-9d20-2f4f6f0d9f11", Name: "MacBook Air M2", Price: 114900, Quantity: 2},
	}
	data, err := json.Marshal(lines)
	require.NoError(t, err)

	t.Run("Load", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectGet("cart:session-1").SetVal(string(data))

			// Act
			loaded, err := repo.Load(ctx, "session-1")

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, lines, loaded)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - Missing Cart Is Not An Error", func(t *testing.T) {
			// Arrange
			mock.ExpectGet("cart:session-2").RedisNil()

			// Act
			loaded, err := repo.Load(ctx, "session-2")

			// Assert
			assert.NoError(t, err)
			assert.Nil(t, loaded)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Corrupt Blob", func(t *testing.T) {
			// Arrange
			mock.ExpectGet("cart:session-3").SetVal(`{"not"`)

			// Act
			loaded, err := repo.Load(ctx, "session-3")

			// Assert
			assert.Error(t, err)
			assert.Nil(t, loaded)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Redis Error", func(t *testing.T) {
			// Arrange
			mock.ExpectGet("cart:session-4").SetErr(errors.New("connection refused"))

			// Act
			loaded, err := repo.Load(ctx, "session-4")

			// Assert
			assert.Error(t, err)
			assert.Nil(t, loaded)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectSet("cart:session-1", data, 720*time.Hour).SetVal("OK")

			// Act
			err := repo.Save(ctx, "session-1", lines)

			// Assert
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Redis Error", func(t *testing.T) {
			// Arrange
			mock.ExpectSet("cart:session-1", data, 720*time.Hour).SetErr(errors.New("connection refused"))

			// Act
			err := repo.Save(ctx, "session-1", lines)

			// Assert
			assert.Error(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Drop", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectDel("cart:session-1").SetVal(1)

			// Act
			err := repo.Drop(ctx, "session-1")

			// Assert
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
