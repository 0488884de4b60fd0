package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// ObjectiveController handles learning objectives
type ObjectiveController struct {
	objectiveService services.ObjectiveService
}

// NewObjectiveController creates a new ObjectiveController
func NewObjectiveController(objectiveService services.ObjectiveService) *ObjectiveController {
	return &ObjectiveController{objectiveService: objectiveService}
}

// ListObjectives godoc
// @Summary List learning objectives
// @Tags objectives
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.ObjectivesResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/objectives [get]
func (c *ObjectiveController) ListObjectives(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	resp, err := c.objectiveService.ListObjectives(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp, "")
}

// CreateObjective godoc
// @Summary Add a learning objective
// @Description Appends the objective after the current last one
// @Tags objectives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateObjectiveRequest true "Objective"
// @Success 201 {object} dto.APIResponse{data=models.CourseObjective}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/objectives [post]
func (c *ObjectiveController) CreateObjective(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.CreateObjectiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	objective, err := c.objectiveService.CreateObjective(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, objective, "Objective created successfully")
}

// DeleteObjective godoc
// @Summary Delete a learning objective
// @Tags objectives
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param id path string true "Objective ID"
// @Success 200 {object} dto.APIResponse "Objective deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Objective not found"
// @Router /courses/{courseId}/objectives/{id} [delete]
func (c *ObjectiveController) DeleteObjective(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "id")
	if !valid {
		return
	}

	if err := c.objectiveService.DeleteObjective(ctx.Request.Context(), ids[0], ids[1]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Objective deleted successfully")
}

// ReorderObjectives applies a batch of order changes
// @Summary Reorder learning objectives
// @Description Applies every update in one transaction. Orders must stay unique across the course.
// @Tags objectives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.ReorderObjectivesRequest true "Order updates"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseObjective}
// @Failure 400 {object} dto.ErrorResponse "Invalid or colliding orders"
// @Failure 404 {object} dto.ErrorResponse "Objective not found"
// @Router /courses/{courseId}/objectives/reorder [put]
func (c *ObjectiveController) ReorderObjectives(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.ReorderObjectivesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	list, err := c.objectiveService.ReorderObjectives(ctx.Request.Context(), courseID, req.Updates)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, list, "Objectives reordered")
}

// SetMainObjective godoc
// @Summary Set the main objective
// @Tags objectives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.MainObjectiveRequest true "Main objective"
// @Success 200 {object} dto.APIResponse{data=models.CourseDetails}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/objectives/main [put]
func (c *ObjectiveController) SetMainObjective(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.MainObjectiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	details, err := c.objectiveService.SetMainObjective(ctx.Request.Context(), courseID, req.MainObjective)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, details, "Main objective saved")
}
