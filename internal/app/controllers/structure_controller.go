package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// StructureController serves the course content tree
type StructureController struct {
	structureService services.StructureService
}

// NewStructureController creates a new StructureController
func NewStructureController(structureService services.StructureService) *StructureController {
	return &StructureController{structureService: structureService}
}

// GetStructure returns the hydrated tree
// @Summary Get course structure
// @Description Returns the root modules of the course with their lessons, media and quizzes nested and sorted by display_order
// @Tags structure
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.StructureResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/structure [get]
func (c *StructureController) GetStructure(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	tree, err := c.structureService.GetStructure(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.StructureResponse{Structure: tree}, "")
}

// ReplaceStructure stores an edited tree
// @Summary Replace course structure
// @Description Replaces every structural entry of the course with the given tree. Display orders are renumbered 1..n per parent from the array order. Lessons moved under another module are reassigned to it.
// @Tags structure
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.ReplaceStructureRequest true "Complete course tree"
// @Success 200 {object} dto.APIResponse{data=dto.StructureResponse} "Structure saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid tree"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Conflicting change"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/structure [put]
func (c *StructureController) ReplaceStructure(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.ReplaceStructureRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tree, err := c.structureService.ReplaceStructure(ctx.Request.Context(), courseID, req.Structure)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.StructureResponse{Structure: tree}, "Structure saved")
}
