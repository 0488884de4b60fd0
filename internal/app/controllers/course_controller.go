package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/helpers"
)

// CourseController handles course and feedback settings endpoints
type CourseController struct {
	courseService   services.CourseService
	feedbackService services.FeedbackService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, feedbackService services.FeedbackService) *CourseController {
	return &CourseController{
		courseService:   courseService,
		feedbackService: feedbackService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if req.InstructorID == nil {
		if userID := middleware.CurrentUserID(ctx); userID != "" {
			req.InstructorID = &userID
		}
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, course, "Course created successfully")
}

// ListCourses returns one page of courses
// @Summary List courses
// @Description Lists courses newest first
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page := helpers.PageFromQuery(ctx)

	list, err := c.courseService.ListCourses(ctx.Request.Context(), page.Number, page.Size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, list, "")
}

// GetCourse retrieves a course by ID
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course, "")
}

// DeleteCourse removes a course and all of its content
// @Summary Delete a course
// @Description Deletes the course with its structure, modules, lessons, media, quizzes, objectives and settings in one transaction
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Course deleted successfully")
}

// GetFeedbackSettings godoc
// @Summary Get feedback settings
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.FeedbackSettings}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/feedback-settings [get]
func (c *CourseController) GetFeedbackSettings(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	settings, err := c.feedbackService.GetSettings(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, settings, "")
}

// UpdateFeedbackSettings godoc
// @Summary Replace feedback settings
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.FeedbackSettingsRequest true "Feedback settings"
// @Success 200 {object} dto.APIResponse{data=models.FeedbackSettings}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/feedback-settings [put]
func (c *CourseController) UpdateFeedbackSettings(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.FeedbackSettingsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	settings, err := c.feedbackService.UpdateSettings(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, settings, "Feedback settings saved")
}
