package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseServiceImpl struct {
	store    repositories.Store
	storage  filestorage.ObjectStorage
	notifier StructureNotifier
}

// NewCourseService creates a new CourseService. storage may be nil.
func NewCourseService(store repositories.Store, storage filestorage.ObjectStorage, notifier StructureNotifier) CourseService {
	return &courseServiceImpl{
		store:    store,
		storage:  storage,
		notifier: notifierOrNop(notifier),
	}
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	title, err := requiredName("title", req.Title)
	if err != nil {
		return nil, err
	}

	ts := now()
	course := &models.Course{
		ID:           uuid.New(),
		Title:        title,
		Description:  trimmedOrNil(req.Description),
		InstructorID: trimmedOrNil(req.InstructorID),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := s.store.Courses().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Str("courseID", course.ID.String()).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.store.Courses().GetByID(ctx, id)
}

// ListCourses returns one page of courses, newest first
func (s *courseServiceImpl) ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	p := helpers.NewPage(page, size)

	courses, total, err := s.store.Courses().List(ctx, p.Offset(), p.Size)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	return &dto.CourseListResponse{
		Courses:    courses,
		Pagination: p.Info(total),
	}, nil
}

// DeleteCourse removes the course and everything that belongs to it in one
// transaction. Uploaded media files are removed after the commit.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	var media []*models.Media
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		var err error
		if media, err = tx.Media().ListByCourse(ctx, id); err != nil {
			return fmt.Errorf("error listing course media: %w", err)
		}
		return tx.Courses().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, s.storage, media)
	s.notifier.StructureChanged(id, "course.deleted")
	logger.Info().Str("courseID", id.String()).Int("media", len(media)).Msg("Course deleted")
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
