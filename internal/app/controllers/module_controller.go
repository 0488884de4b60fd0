package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// ModuleController handles modules, lessons and lesson content
type ModuleController struct {
	moduleService services.ModuleService
	lessonService services.LessonService
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService services.ModuleService, lessonService services.LessonService) *ModuleController {
	return &ModuleController{
		moduleService: moduleService,
		lessonService: lessonService,
	}
}

// CreateModule handles module creation
// @Summary Create a module
// @Description Creates a module and appends it as the last root of the course structure
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateModuleRequest true "Module information"
// @Success 201 {object} dto.APIResponse{data=dto.ModuleCreatedResponse} "Module created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.CreateModuleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.moduleService.CreateModule(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Module created successfully")
}

// ListModules godoc
// @Summary List modules
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Module}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	modules, err := c.moduleService.ListModules(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, modules, "")
}

// GetModule godoc
// @Summary Get a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} dto.APIResponse{data=models.Module}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /courses/{courseId}/modules/{moduleId} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId")
	if !valid {
		return
	}

	module, err := c.moduleService.GetModule(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, module, "")
}

// UpdateModule godoc
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Module}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /courses/{courseId}/modules/{moduleId} [patch]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId")
	if !valid {
		return
	}
	var req dto.UpdateModuleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	module, err := c.moduleService.UpdateModule(ctx.Request.Context(), ids[0], ids[1], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, module, "Module updated successfully")
}

// DeleteModule removes a module with its subtree
// @Summary Delete a module
// @Description Deletes the module, its lessons with their content, and every media and quiz placed under it
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Module deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/modules/{moduleId} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId")
	if !valid {
		return
	}

	if err := c.moduleService.DeleteModule(ctx.Request.Context(), ids[0], ids[1]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Module deleted successfully")
}

// CreateLesson handles lesson creation
// @Summary Create a lesson
// @Description Creates a lesson and appends it as the last child of its module
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=dto.LessonCreatedResponse} "Lesson created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons [post]
func (c *ModuleController) CreateLesson(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId")
	if !valid {
		return
	}
	var req dto.CreateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.lessonService.CreateLesson(ctx.Request.Context(), ids[0], ids[1], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Lesson created successfully")
}

// ListLessons godoc
// @Summary List the lessons of a module
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons [get]
func (c *ModuleController) ListLessons(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId")
	if !valid {
		return
	}

	lessons, err := c.lessonService.ListLessons(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, lessons, "")
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=models.Lesson}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [get]
func (c *ModuleController) GetLesson(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId", "lessonId")
	if !valid {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx.Request.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, lesson, "")
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Lesson}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [patch]
func (c *ModuleController) UpdateLesson(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId", "lessonId")
	if !valid {
		return
	}
	var req dto.UpdateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx.Request.Context(), ids[0], ids[1], ids[2], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, lesson, "Lesson updated successfully")
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Description Deletes the lesson, its content, and the media and quizzes placed under it
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.APIResponse "Lesson deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [delete]
func (c *ModuleController) DeleteLesson(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "moduleId", "lessonId")
	if !valid {
		return
	}

	if err := c.lessonService.DeleteLesson(ctx.Request.Context(), ids[0], ids[1], ids[2]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Lesson deleted successfully")
}

// ListContent godoc
// @Summary List lesson content
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=[]models.LessonContent}
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{courseId}/lessons/{lessonId}/content [get]
func (c *ModuleController) ListContent(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "lessonId")
	if !valid {
		return
	}

	items, err := c.lessonService.ListContent(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, items, "")
}

// CreateContent godoc
// @Summary Add lesson content
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body dto.CreateLessonContentRequest true "Content item"
// @Success 201 {object} dto.APIResponse{data=models.LessonContent}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{courseId}/lessons/{lessonId}/content [post]
func (c *ModuleController) CreateContent(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "lessonId")
	if !valid {
		return
	}
	var req dto.CreateLessonContentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item, err := c.lessonService.CreateContent(ctx.Request.Context(), ids[0], ids[1], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, item, "Content created successfully")
}

// DeleteContent godoc
// @Summary Delete lesson content
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Param contentId query string true "Content ID"
// @Success 200 {object} dto.APIResponse "Content deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid content ID"
// @Failure 404 {object} dto.ErrorResponse "Content not found"
// @Router /courses/{courseId}/lessons/{lessonId}/content [delete]
func (c *ModuleController) DeleteContent(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "lessonId")
	if !valid {
		return
	}
	contentID, err := uuid.Parse(ctx.Query("contentId"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid contentId: must be a UUID"))
		return
	}

	if err := c.lessonService.DeleteContent(ctx.Request.Context(), ids[0], ids[1], contentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Content deleted successfully")
}
