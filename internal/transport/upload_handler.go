package transport

import (
	"errors"
	"net/http"

	"puf-orgu/internal/middleware"
	"puf-orgu/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadHandler handles product image uploads
type UploadHandler struct {
	assets service.AssetService
	logger *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(assets service.AssetService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		assets: assets,
		logger: logger,
	}
}

// RegisterRoutes registers the upload route behind admin auth
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/upload", h.Upload)
	})
}

// Upload accepts one multipart image file and returns its public URL.
// Several files in one admin submission arrive as independent requests;
// each returns its own URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Hard cap on the request body, one MiB above the file limit so a file
	// just over it still reaches the service and gets the size error rather
	// than a parse failure. Anything bigger is cut off here.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+1024*1024)

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, "file too large, maximum size is 5MB")
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	url, err := h.assets.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch err {
		case service.ErrInvalidFileType:
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid file type, only JPG, PNG and WebP are allowed")
		case service.ErrFileTooLarge:
			middleware.RespondWithError(w, http.StatusBadRequest, "file too large, maximum size is 5MB")
		default:
			h.logger.Error("Upload failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to upload file")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
