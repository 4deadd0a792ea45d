package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pulseadmin/internal/service"
)

// FileHandler bundles uploaded-file metadata endpoints.
type FileHandler struct {
	svc service.FileService
}

// NewFileHandler creates a handler layer.
func NewFileHandler(svc service.FileService) *FileHandler {
	return &FileHandler{svc: svc}
}

// FileRequest represents a file metadata registration payload.
type FileRequest struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size" validate:"gte=0"`
	StoragePath string `json:"storage_path" validate:"required"`
}

// ListFiles godoc
// @Summary List files in the caller's tenant
// @Tags files
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UploadedFile
// @Failure 403 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) ListFiles(c echo.Context) error {
	fs, err := h.svc.List(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, fs)
}

// GetFile godoc
// @Summary Get file metadata by id
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} model.UploadedFile
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) GetFile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, err := h.svc.Get(c.Request().Context(), principalFrom(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// CreateFile godoc
// @Summary Register file metadata
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FileRequest true "File metadata"
// @Success 201 {object} model.UploadedFile
// @Failure 403 {object} errors.ErrorResponse
// @Router /files [post]
func (h *FileHandler) CreateFile(c echo.Context) error {
	var req FileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.svc.Create(c.Request().Context(), principalFrom(c), service.FileInput{
		Name:        req.Name,
		ContentType: req.ContentType,
		Size:        req.Size,
		StoragePath: req.StoragePath,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// DeleteFile godoc
// @Summary Delete file metadata
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [delete]
func (h *FileHandler) DeleteFile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), principalFrom(c), uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted"})
}
