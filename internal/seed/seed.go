package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/services"
)

// Services are the services the demo data is created through
type Services struct {
	Courses    services.CourseService
	Modules    services.ModuleService
	Lessons    services.LessonService
	Quizzes    services.QuizService
	Objectives services.ObjectiveService
}

// CreateDemoCourse creates a small sample course when the store holds no
// courses yet. It is a no-op on a populated store.
func CreateDemoCourse(ctx context.Context, svc Services, lgr zerolog.Logger) error {
	existing, err := svc.Courses.ListCourses(ctx, 1, 1)
	if err != nil {
		return fmt.Errorf("error checking existing courses: %w", err)
	}
	if existing.Pagination.TotalItems > 0 {
		lgr.Info().Int64("courses", existing.Pagination.TotalItems).Msg("Courses present, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo course...")
	description := "A short tour of the Go toolchain"
	course, err := svc.Courses.CreateCourse(ctx, &dto.CreateCourseRequest{
		Title:       "Getting Started with Go",
		Description: &description,
	})
	if err != nil {
		return fmt.Errorf("error creating demo course: %w", err)
	}

	modules := []struct {
		name    string
		lessons []string
	}{
		{"Setup", []string{"Installing Go", "Your first module"}},
		{"Language basics", []string{"Types and values", "Interfaces"}},
	}

	for i, m := range modules {
		created, err := svc.Modules.CreateModule(ctx, course.ID, &dto.CreateModuleRequest{Name: m.name, Number: i + 1})
		if err != nil {
			return fmt.Errorf("error creating demo module %q: %w", m.name, err)
		}
		for j, name := range m.lessons {
			if _, err := svc.Lessons.CreateLesson(ctx, course.ID, created.Module.ID, &dto.CreateLessonRequest{Name: name, Number: j + 1}); err != nil {
				return fmt.Errorf("error creating demo lesson %q: %w", name, err)
			}
		}
		if i == 0 {
			quiz, err := svc.Quizzes.CreateQuiz(ctx, course.ID, &dto.CreateQuizRequest{Name: "Setup check", Number: 1, ParentID: created.Module.ID})
			if err != nil {
				return fmt.Errorf("error creating demo quiz: %w", err)
			}
			if _, err := svc.Quizzes.CreateQuestion(ctx, course.ID, quiz.Quiz.ID, &dto.CreateQuestionRequest{
				QuestionText:   "go mod init creates a go.mod file",
				QuestionType:   models.QuestionTrueFalse,
				CorrectAnswers: []string{"true"},
				Points:         1,
			}); err != nil {
				return fmt.Errorf("error creating demo question: %w", err)
			}
		}
	}

	if _, err := svc.Objectives.SetMainObjective(ctx, course.ID, "Write, test and ship a small Go program"); err != nil {
		return fmt.Errorf("error setting demo main objective: %w", err)
	}
	for _, text := range []string{"Install the toolchain", "Read and write idiomatic Go"} {
		if _, err := svc.Objectives.CreateObjective(ctx, course.ID, &dto.CreateObjectiveRequest{ObjectiveText: text}); err != nil {
			return fmt.Errorf("error creating demo objective: %w", err)
		}
	}

	lgr.Info().Str("courseID", course.ID.String()).Msg("Demo course created")
	return nil
}
