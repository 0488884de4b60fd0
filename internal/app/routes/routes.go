package routes

import (
	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/learnhub/internal/app/auth"
	"github.com/yigit/learnhub/internal/app/controllers"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/websocket"
)

// Controllers groups every handler mounted under /api/v1
type Controllers struct {
	Course    *controllers.CourseController
	Structure *controllers.StructureController
	Module    *controllers.ModuleController
	Media     *controllers.MediaController
	Quiz      *controllers.QuizController
	Objective *controllers.ObjectiveController
	Websocket *websocket.Handler

	// Authz limits course changes to the course's instructor; nil allows any author
	Authz *appAuth.AuthorizationService
}

// SetupRouter configures all application routes. Reads need any valid token,
// changes need an authoring role and, with Authz set, ownership of the course.
func SetupRouter(router *gin.Engine, ctrl *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())

	author := authMiddleware.AuthorRequired()
	edit := author
	if ctrl.Authz != nil {
		edit = authMiddleware.CourseOwnerRequired(ctrl.Authz)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.POST("", author, ctrl.Course.CreateCourse)
		courses.GET("/:courseId", ctrl.Course.GetCourse)
		courses.DELETE("/:courseId", edit, ctrl.Course.DeleteCourse)
	}

	course := courses.Group("/:courseId")

	structure := course.Group("/structure")
	{
		structure.GET("", ctrl.Structure.GetStructure)
		structure.PUT("", edit, ctrl.Structure.ReplaceStructure)
		if ctrl.Websocket != nil {
			structure.GET("/ws", ctrl.Websocket.HandleConnection)
		}
	}

	modules := course.Group("/modules")
	{
		modules.GET("", ctrl.Module.ListModules)
		modules.POST("", edit, ctrl.Module.CreateModule)
		modules.GET("/:moduleId", ctrl.Module.GetModule)
		modules.PATCH("/:moduleId", edit, ctrl.Module.UpdateModule)
		modules.DELETE("/:moduleId", edit, ctrl.Module.DeleteModule)

		lessons := modules.Group("/:moduleId/lessons")
		lessons.GET("", ctrl.Module.ListLessons)
		lessons.POST("", edit, ctrl.Module.CreateLesson)
		lessons.GET("/:lessonId", ctrl.Module.GetLesson)
		lessons.PATCH("/:lessonId", edit, ctrl.Module.UpdateLesson)
		lessons.DELETE("/:lessonId", edit, ctrl.Module.DeleteLesson)
	}

	content := course.Group("/lessons/:lessonId/content")
	{
		content.GET("", ctrl.Module.ListContent)
		content.POST("", edit, ctrl.Module.CreateContent)
		content.DELETE("", edit, ctrl.Module.DeleteContent)
	}

	media := course.Group("/media")
	{
		media.GET("", ctrl.Media.ListMedia)
		media.POST("", edit, ctrl.Media.CreateMedia)
		media.POST("/presigned-url", edit, ctrl.Media.PresignUpload)
		media.GET("/:id", ctrl.Media.GetMedia)
		media.DELETE("/:id", edit, ctrl.Media.DeleteMedia)
	}

	quizzes := course.Group("/quizzes")
	{
		quizzes.GET("", ctrl.Quiz.ListQuizzes)
		quizzes.POST("", edit, ctrl.Quiz.CreateQuiz)
		quizzes.GET("/:quizId", ctrl.Quiz.GetQuiz)
		quizzes.DELETE("/:quizId", edit, ctrl.Quiz.DeleteQuiz)
		quizzes.GET("/:quizId/settings", ctrl.Quiz.GetSettings)
		quizzes.PUT("/:quizId/settings", edit, ctrl.Quiz.UpdateSettings)
		quizzes.GET("/:quizId/questions", ctrl.Quiz.ListQuestions)
		quizzes.POST("/:quizId/questions", edit, ctrl.Quiz.CreateQuestion)
		quizzes.DELETE("/:quizId/questions/:questionId", edit, ctrl.Quiz.DeleteQuestion)
	}

	objectives := course.Group("/objectives")
	{
		objectives.GET("", ctrl.Objective.ListObjectives)
		objectives.POST("", edit, ctrl.Objective.CreateObjective)
		objectives.PUT("/reorder", edit, ctrl.Objective.ReorderObjectives)
		objectives.PUT("/main", edit, ctrl.Objective.SetMainObjective)
		objectives.DELETE("/:id", edit, ctrl.Objective.DeleteObjective)
	}

	course.GET("/feedback-settings", ctrl.Course.GetFeedbackSettings)
	course.PUT("/feedback-settings", edit, ctrl.Course.UpdateFeedbackSettings)
}

// SetupUploads mounts the signed upload endpoint and static file serving for
// the local storage backend. A file is uploaded and served on the same path.
func SetupUploads(router *gin.Engine, media *controllers.MediaController, root string) {
	router.PUT("/uploads/*key", media.Upload)
	router.Static("/uploads", root)
}
