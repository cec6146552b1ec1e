package service_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	"github.com/alamlaptops/storefront/internal/repositories/mocks"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newImageFixture(blobs *fakeBlobStore) (*mocks.ImageRepository, *mocks.ProductRepository, service.ImageService) {
	images := new(mocks.ImageRepository)
	products := new(mocks.ProductRepository)

	return images, products, service.NewImageService(images, products, blobs, "/images")
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Stores Blob And Metadata", func(t *testing.T) {
		// Arrange
		blobs := newFakeBlobStore()
		images, products, imageService := newImageFixture(blobs)

		products.On("GetProductByID", mock.Anything, productID).Return(&models.Product{ID: productID}, nil).Once()
		images.On("CreateImage", mock.Anything, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.ProductID == productID && strings.HasSuffix(img.Path, ".webp")
		})).Return(nil).Once()

		// Act
		image, err := imageService.Upload(ctx, productID, "front-view.webp", strings.NewReader("image-bytes"))

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, image.ID)
		assert.Equal(t, "/images/"+image.Path, image.PublicURL)
		assert.Contains(t, blobs.files, image.Path)
		assert.NotContains(t, image.Path, "front-view", "stored name must not come from the upload")
		images.AssertExpectations(t)
	})

	t.Run("Failure - Unsupported Extension", func(t *testing.T) {
		// Arrange
		blobs := newFakeBlobStore()
		images, products, imageService := newImageFixture(blobs)

		// Act
		image, err := imageService.Upload(ctx, productID, "malware.exe", strings.NewReader("x"))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, image)
		assert.Empty(t, blobs.files)
		products.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
		images.AssertNotCalled(t, "CreateImage", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Metadata Write Rolls Back The Blob", func(t *testing.T) {
		// Arrange
		blobs := newFakeBlobStore()
		images, products, imageService := newImageFixture(blobs)

		products.On("GetProductByID", mock.Anything, productID).Return(&models.Product{ID: productID}, nil).Once()
		images.On("CreateImage", mock.Anything, mock.AnythingOfType("*models.ProductImage")).Return(errors.New("db down")).Once()

		// Act
		image, err := imageService.Upload(ctx, productID, "photo.jpg", strings.NewReader("bytes"))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, image)
		assert.Empty(t, blobs.files, "a failed upload must not leave an orphaned blob")
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		blobs := newFakeBlobStore()
		_, products, imageService := newImageFixture(blobs)

		products.On("GetProductByID", mock.Anything, productID).Return(nil, errors.New("no rows")).Once()

		// Act
		image, err := imageService.Upload(ctx, productID, "photo.png", strings.NewReader("bytes"))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, image)
		assert.Empty(t, blobs.files)
	})
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()
	imageID := uuid.New()

	t.Run("Success - Removes Metadata And Blob", func(t *testing.T) {
		// Arrange
		blobs := newFakeBlobStore()
		blobs.files["abc.webp"] = "bytes"
		images, _, imageService := newImageFixture(blobs)

		images.On("GetImageByID", mock.Anything, imageID).Return(&models.ProductImage{ID: imageID, Path: "abc.webp"}, nil).Once()
		images.On("DeleteImage", mock.Anything, imageID).Return(nil).Once()

		// Act
		err := imageService.Delete(ctx, imageID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, blobs.files)
		images.AssertExpectations(t)
	})

	t.Run("Failure - Image Not Found", func(t *testing.T) {
		// Arrange
		images, _, imageService := newImageFixture(newFakeBlobStore())

		images.On("GetImageByID", mock.Anything, imageID).Return(nil, sql.ErrNoRows).Once()

		// Act
		err := imageService.Delete(ctx, imageID)

		// Assert
		assert.Error(t, err)

		var appErr *appErrors.AppError

		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		images.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
	})
}

func TestListImagesByProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	images, _, imageService := newImageFixture(newFakeBlobStore())
	expected := []models.ProductImage{{ID: uuid.New(), ProductID: productID, Path: "a.webp"}}

	images.On("ListImagesByProduct", mock.Anything, productID).Return(expected, nil).Once()

	result, err := imageService.ListByProduct(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}
