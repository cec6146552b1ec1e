package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/errors"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/alamlaptops/storefront/internal/utils/response"
)

// Uploads larger than this are rejected before reading the file part.
const maxImageUploadBytes = 10 << 20

type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload accepts a multipart form with the blob under the "image" field.
func (h *ImageHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)

		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))

			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			response.Error(w, errors.BadRequestError("Image file is required").WithError(err))

			return
		}

		defer file.Close()

		image, err := h.imageService.Upload(r.Context(), productID, header.Filename, file)

		if err != nil {
			logger.Warn("Image upload failed", slog.String("productId", productID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Image uploaded", slog.String("imageId", image.ID.String()), slog.String("productId", productID.String()))
		response.Success(w, http.StatusCreated, image)
	}
}

func (h *ImageHandler) ListImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		images, err := h.imageService.ListByProduct(r.Context(), productID)

		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, images)
	}
}

func (h *ImageHandler) DeleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		if err := h.imageService.Delete(r.Context(), id); err != nil {
			logger.Error("Image deletion failed", slog.String("imageId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Image deleted", slog.String("imageId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}
