package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alamlaptops/storefront/internal/models"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewImageRepo(db)
	ctx := t.Context()

	t.Run("CreateImage", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			image := &models.ProductImage{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				Path:      "3f1c9a.jpg",
				PublicURL: "/images/3f1c9a.jpg",
			}
			now := time.Now()

			mock.ExpectQuery(`INSERT INTO product_images`).
				WithArgs(image.ID, image.ProductID, image.Path, image.PublicURL).
				WillReturnRows(sqlmock.NewRows([]string{"uploaded_at"}).AddRow(now))

			// Act
			err := repo.CreateImage(ctx, image)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, now, image.UploadedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetImageByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			productID := uuid.New()

			mock.ExpectQuery(`SELECT id, product_id, path, public_url, uploaded_at\s+FROM product_images\s+WHERE id = \$1`).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "path", "public_url", "uploaded_at"}).
					AddRow(id, productID, "3f1c9a.jpg", "/images/3f1c9a.jpg", time.Now()))

			// Act
			image, err := repo.GetImageByID(ctx, id)

			// Assert
			assert.NoError(t, err)
			require.NotNil(t, image)
			assert.Equal(t, "3f1c9a.jpg", image.Path)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			// Arrange
			id := uuid.New()

			mock.ExpectQuery(`SELECT id, product_id, path, public_url, uploaded_at\s+FROM product_images\s+WHERE id = \$1`).
				WithArgs(id).
				WillReturnError(sql.ErrNoRows)

			// Act
			image, err := repo.GetImageByID(ctx, id)

			// Assert
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, image)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListImagesByProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			productID := uuid.New()

			mock.ExpectQuery(`SELECT id, product_id, path, public_url, uploaded_at\s+FROM product_images\s+WHERE product_id = \$1`).
				WithArgs(productID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "path", "public_url", "uploaded_at"}).
					AddRow(uuid.New(), productID, "a.jpg", "/images/a.jpg", time.Now()).
					AddRow(uuid.New(), productID, "b.jpg", "/images/b.jpg", time.Now()))

			// Act
			images, err := repo.ListImagesByProduct(ctx, productID)

			// Assert
			assert.NoError(t, err)
			assert.Len(t, images, 2)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("DeleteImage", func(t *testing.T) {
		t.Run("Failure - Unknown Image", func(t *testing.T) {
			// Arrange
			id := uuid.New()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product_images WHERE id = $1`)).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.DeleteImage(ctx, id)

			// Assert
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
