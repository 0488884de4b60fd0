package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models/dto"
)

// CourseLookup reports whether a course exists
type CourseLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler upgrades editor connections and registers them with the hub
type Handler struct {
	hub     *Hub
	courses CourseLookup
	logger  zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, courses CourseLookup, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		courses: courses,
		logger:  logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to course structure changes
// @Description Upgrades to a WebSocket that receives a structure.updated event whenever the course tree changes
// @Tags structure
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal Server Error"
// @Router /courses/{courseId}/structure/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid course ID"))
		return
	}

	exists, err := h.courses.Exists(c.Request.Context(), courseID)
	if err != nil {
		h.logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Failed to check course")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "An internal server error occurred"))
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Course not found"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, courseID, c.GetString("userID"), h.logger)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}
	client.serve()
}
