package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/middleware"
)

// QuizController handles quizzes, their settings and questions
type QuizController struct {
	quizService services.QuizService
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService services.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz handles quiz creation
// @Summary Create a quiz
// @Description Creates a quiz and appends it under the module or lesson given as parent_id
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateQuizRequest true "Quiz information"
// @Success 201 {object} dto.APIResponse{data=dto.QuizCreatedResponse} "Quiz created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or parent"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}
	var req dto.CreateQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.quizService.CreateQuiz(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Quiz created successfully")
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Quiz}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	courseID, valid := uuidParam(ctx, "courseId")
	if !valid {
		return
	}

	quizzes, err := c.quizService.ListQuizzes(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, quizzes, "")
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=models.Quiz}
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /courses/{courseId}/quizzes/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}

	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, quiz, "")
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Deletes the quiz settings, its questions, its structural entry and the quiz in one transaction
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.APIResponse "Quiz deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/quizzes/{quizId} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}

	if err := c.quizService.DeleteQuiz(ctx.Request.Context(), ids[0], ids[1]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Quiz deleted successfully")
}

// GetSettings godoc
// @Summary Get quiz settings
// @Description Returns the stored settings, or the defaults when none were saved
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=models.QuizSettings}
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /courses/{courseId}/quizzes/{quizId}/settings [get]
func (c *QuizController) GetSettings(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}

	settings, err := c.quizService.GetSettings(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, settings, "")
}

// UpdateSettings godoc
// @Summary Save quiz settings
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Param request body dto.QuizSettingsRequest true "Quiz settings"
// @Success 200 {object} dto.APIResponse{data=models.QuizSettings}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /courses/{courseId}/quizzes/{quizId}/settings [put]
func (c *QuizController) UpdateSettings(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}
	var req dto.QuizSettingsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	settings, err := c.quizService.UpdateSettings(ctx.Request.Context(), ids[0], ids[1], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, settings, "Quiz settings saved")
}

// ListQuestions godoc
// @Summary List quiz questions
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.APIResponse{data=[]models.QuizQuestion}
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /courses/{courseId}/quizzes/{quizId}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}

	questions, err := c.quizService.ListQuestions(ctx.Request.Context(), ids[0], ids[1])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, questions, "")
}

// CreateQuestion godoc
// @Summary Add a quiz question
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.APIResponse{data=models.QuizQuestion}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 409 {object} dto.ErrorResponse "Question order already used"
// @Router /courses/{courseId}/quizzes/{quizId}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId")
	if !valid {
		return
	}
	var req dto.CreateQuestionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	question, err := c.quizService.CreateQuestion(ctx.Request.Context(), ids[0], ids[1], &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, question, "Question created successfully")
}

// DeleteQuestion godoc
// @Summary Delete a quiz question
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Param questionId path string true "Question ID"
// @Success 200 {object} dto.APIResponse "Question deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /courses/{courseId}/quizzes/{quizId}/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	ids, valid := uuidParams(ctx, "courseId", "quizId", "questionId")
	if !valid {
		return
	}

	if err := c.quizService.DeleteQuestion(ctx.Request.Context(), ids[0], ids[1], ids[2]); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Question deleted successfully")
}
