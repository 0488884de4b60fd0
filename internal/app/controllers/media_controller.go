package controllers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// maxUploadBytes caps a single signed upload to local storage
const maxUploadBytes = 512 << 20

// MediaController handles course media and uploads
type MediaController struct {
	mediaService services.MediaService
	local        *filestorage.LocalStorage
}

// NewMediaController creates a new MediaController. local is nil unless the
// local storage backend is configured.
func NewMediaController(mediaService services.MediaService, local *filestorage.LocalStorage) *MediaController {
	return &MediaController{
		mediaService: mediaService,
		local:        local,
	}
}

// CreateMedia registers an uploaded file
// @Summary Create media
// @Description Stores a media row and appends it under parent_id, or under lesson_id when parent_id is omitted
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateMediaRequest true "Media information"
// @Success 201 {object} dto.APIResponse{data=dto.MediaCreatedResponse} "Media created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or parent"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/media [post]
func (c *MediaController) CreateMedia(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.CreateMediaRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.mediaService.CreateMedia(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Media created successfully")
}

// ListMedia godoc
// @Summary List media
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Media}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/media [get]
func (c *MediaController) ListMedia(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	media, err := c.mediaService.ListMedia(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, media, "")
}

// GetMedia godoc
// @Summary Get media
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param id path string true "Media ID"
// @Success 200 {object} dto.APIResponse{data=models.Media}
// @Failure 404 {object} dto.ErrorResponse "Media not found"
// @Router /courses/{courseId}/media/{id} [get]
func (c *MediaController) GetMedia(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "id")
	if !valid {
		return
	}

	media, err := c.mediaService.GetMedia(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, media, "")
}

// DeleteMedia godoc
// @Summary Delete media
// @Description Deletes the media row and its structural entry, then removes the stored file
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param id path string true "Media ID"
// @Success 200 {object} dto.APIResponse "Media deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Media not found"
// @Router /courses/{courseId}/media/{id} [delete]
func (c *MediaController) DeleteMedia(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "id")
	if !valid {
		return
	}

	if err := c.mediaService.DeleteMedia(ctx.Request.Context(), ids[0], ids[1]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Media deleted successfully")
}

// PresignUpload godoc
// @Summary Get a presigned upload URL
// @Description Returns a time-limited URL the client PUTs the file to directly. fields is always an object and is empty for PUT uploads.
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.PresignRequest true "File to upload"
// @Success 200 {object} dto.APIResponse{data=dto.PresignResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Storage not configured"
// @Router /courses/{courseId}/media/presigned-url [post]
func (c *MediaController) PresignUpload(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.PresignRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.mediaService.PresignUpload(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp, "")
}

// Upload receives a file PUT to a URL signed by the local storage backend.
// The signature replaces the bearer token on this route.
func (c *MediaController) Upload(ctx *gin.Context) {
	if c.local == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrStorageUnavailable)
		return
	}

	key := strings.TrimPrefix(ctx.Param("key"), "/")
	contentType := ctx.Query("content_type")
	if got := ctx.GetHeader("Content-Type"); contentType != "" && got != "" && !sameMediaType(contentType, got) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Content-Type does not match the signed upload"))
		return
	}

	err := c.local.VerifyUpload(key, contentType, ctx.Query("expires"), ctx.Query("signature"))
	switch {
	case errors.Is(err, filestorage.ErrInvalidKey):
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid object key"))
		return
	case err != nil:
		logger.Warn().Err(err).Str("key", key).Msg("Rejected upload")
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidSignature)
		return
	}

	body := http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)
	n, err := c.local.Save(key, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrorCodeBadRequest, "File is too large"))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, gin.H{"object_key": key, "size": n}, "File uploaded")
}

// sameMediaType compares the signed content type with the request header,
// ignoring case, spacing and parameter order
func sameMediaType(signed, header string) bool {
	st, sp, err1 := mime.ParseMediaType(signed)
	ht, hp, err2 := mime.ParseMediaType(header)
	if err1 != nil || err2 != nil {
		return strings.EqualFold(strings.TrimSpace(signed), strings.TrimSpace(header))
	}
	if st != ht || len(sp) != len(hp) {
		return false
	}
	for k, v := range sp {
		if !strings.EqualFold(hp[k], v) {
			return false
		}
	}
	return true
}
