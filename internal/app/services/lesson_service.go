package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

// LessonService defines the interface for lesson and lesson content operations
type LessonService interface {
	CreateLesson(ctx context.Context, courseID, moduleID uuid.UUID, req *dto.CreateLessonRequest) (*dto.LessonCreatedResponse, error)
	GetLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID) (*models.Lesson, error)
	ListLessons(ctx context.Context, courseID, moduleID uuid.UUID) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID, req *dto.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID) error

	ListContent(ctx context.Context, courseID, lessonID uuid.UUID) ([]*models.LessonContent, error)
	CreateContent(ctx context.Context, courseID, lessonID uuid.UUID, req *dto.CreateLessonContentRequest) (*models.LessonContent, error)
	DeleteContent(ctx context.Context, courseID, lessonID, contentID uuid.UUID) error
}

type lessonServiceImpl struct {
	store    repositories.Store
	storage  filestorage.ObjectStorage
	notifier StructureNotifier
}

// NewLessonService creates a new LessonService. storage may be nil.
func NewLessonService(store repositories.Store, storage filestorage.ObjectStorage, notifier StructureNotifier) LessonService {
	return &lessonServiceImpl{
		store:    store,
		storage:  storage,
		notifier: notifierOrNop(notifier),
	}
}

// lessonOfModule loads a lesson after checking its module belongs to the course
func lessonOfModule(ctx context.Context, store repositories.Store, courseID, moduleID, lessonID uuid.UUID) (*models.Lesson, error) {
	if _, err := store.Modules().GetByID(ctx, courseID, moduleID); err != nil {
		return nil, err
	}
	return store.Lessons().GetByID(ctx, moduleID, lessonID)
}

// CreateLesson stores the lesson and appends it as the last child of its module
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, courseID, moduleID uuid.UUID, req *dto.CreateLessonRequest) (*dto.LessonCreatedResponse, error) {
	name, err := requiredName("name", req.Name)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ID:            uuid.New(),
		ModuleID:      moduleID,
		Name:          name,
		Number:        req.Number,
		VideoURL:      trimmedOrNil(req.VideoURL),
		LessonDetails: req.LessonDetails,
		CreatedAt:     now(),
	}

	var entry *models.StructureEntry
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Modules().GetByID(ctx, courseID, moduleID); err != nil {
			return err
		}
		if err := tx.Lessons().Create(ctx, lesson); err != nil {
			return fmt.Errorf("error creating lesson: %w", err)
		}
		entry, err = placeEntry(ctx, tx, courseID, models.ContentLesson, lesson.ID, &moduleID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StructureChanged(courseID, "lesson.created")
	return &dto.LessonCreatedResponse{Lesson: lesson, Structure: entry}, nil
}

// GetLesson retrieves a lesson of a module of the course
func (s *lessonServiceImpl) GetLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID) (*models.Lesson, error) {
	return lessonOfModule(ctx, s.store, courseID, moduleID, lessonID)
}

// ListLessons returns the lessons of a module
func (s *lessonServiceImpl) ListLessons(ctx context.Context, courseID, moduleID uuid.UUID) ([]*models.Lesson, error) {
	if _, err := s.store.Modules().GetByID(ctx, courseID, moduleID); err != nil {
		return nil, err
	}
	return s.store.Lessons().ListByModule(ctx, moduleID)
}

// UpdateLesson applies the non-nil fields of req
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := lessonOfModule(ctx, s.store, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if lesson.Name, err = requiredName("name", *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Number != nil {
		lesson.Number = *req.Number
	}
	if req.VideoURL != nil {
		lesson.VideoURL = trimmedOrNil(req.VideoURL)
	}
	if req.LessonDetails != nil {
		lesson.LessonDetails = req.LessonDetails
	}

	if err := s.store.Lessons().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("error updating lesson: %w", err)
	}
	s.notifier.StructureChanged(courseID, "lesson.updated")
	return lesson, nil
}

// DeleteLesson removes the lesson, its content, the media and quizzes placed
// under it, and their structural entries
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID uuid.UUID) error {
	var removed []*models.Media
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		lesson, err := lessonOfModule(ctx, tx, courseID, moduleID, lessonID)
		if err != nil {
			return err
		}
		if removed, err = deleteDescendants(ctx, tx, courseID, lessonID); err != nil {
			return err
		}
		return deleteLessonRows(ctx, tx, lesson)
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, s.storage, removed)
	s.notifier.StructureChanged(courseID, "lesson.deleted")
	return nil
}

// ListContent returns the items of a lesson, oldest first
func (s *lessonServiceImpl) ListContent(ctx context.Context, courseID, lessonID uuid.UUID) ([]*models.LessonContent, error) {
	if _, err := s.store.Lessons().GetInCourse(ctx, courseID, lessonID); err != nil {
		return nil, err
	}
	return s.store.LessonContent().ListByLesson(ctx, lessonID)
}

// CreateContent adds an item to a lesson. Media items need a file URL.
func (s *lessonServiceImpl) CreateContent(ctx context.Context, courseID, lessonID uuid.UUID, req *dto.CreateLessonContentRequest) (*models.LessonContent, error) {
	title, err := requiredName("title", req.Title)
	if err != nil {
		return nil, err
	}
	fileURL := trimmedOrNil(req.FileURL)
	if req.ContentType == models.LessonContentMedia && fileURL == nil {
		return nil, apperrors.NewValidationError("file_url is required for media content")
	}

	if _, err := s.store.Lessons().GetInCourse(ctx, courseID, lessonID); err != nil {
		return nil, err
	}

	item := &models.LessonContent{
		ID:          uuid.New(),
		LessonID:    lessonID,
		Title:       title,
		ContentType: req.ContentType,
		Content:     req.Content,
		FileType:    trimmedOrNil(req.FileType),
		FileURL:     fileURL,
		CreatedAt:   now(),
	}
	if err := s.store.LessonContent().Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating lesson content: %w", err)
	}

	s.notifier.StructureChanged(courseID, "content.created")
	return item, nil
}

// DeleteContent removes one item of a lesson
func (s *lessonServiceImpl) DeleteContent(ctx context.Context, courseID, lessonID, contentID uuid.UUID) error {
	if _, err := s.store.Lessons().GetInCourse(ctx, courseID, lessonID); err != nil {
		return err
	}
	if err := s.store.LessonContent().Delete(ctx, lessonID, contentID); err != nil {
		return err
	}
	s.notifier.StructureChanged(courseID, "content.deleted")
	return nil
}
