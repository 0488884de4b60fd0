// Package services holds the course content business logic. Every operation
// that touches more than one table runs inside a single store transaction.
//
// Services defined in this package:
// - CourseService: course CRUD and cascading delete
// - StructureService: hydrated content tree and full-structure replace
// - ModuleService, LessonService: modules, lessons and lesson content
// - MediaService: course media and presigned uploads
// - QuizService: quizzes, quiz settings and questions
// - ObjectiveService: learning objectives and the main objective
// - FeedbackService: feedback settings
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// StructureNotifier is told after a committed change to a course tree
type StructureNotifier interface {
	StructureChanged(courseID uuid.UUID, reason string)
}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) StructureChanged(uuid.UUID, string) {}

var now = func() time.Time { return time.Now().UTC() }

func notifierOrNop(n StructureNotifier) StructureNotifier {
	if n == nil {
		return NopNotifier{}
	}
	return n
}

// requiredName trims a name and rejects blank values
func requiredName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewValidationError(field + " cannot be empty")
	}
	return value, nil
}

// requireCourse returns ErrCourseNotFound when the course does not exist
func requireCourse(ctx context.Context, store repositories.Store, courseID uuid.UUID) error {
	exists, err := store.Courses().Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// placeEntry appends a structural entry for contentID as the last child of parentID
func placeEntry(ctx context.Context, tx repositories.Store, courseID uuid.UUID, contentType models.ContentType, contentID uuid.UUID, parentID *uuid.UUID) (*models.StructureEntry, error) {
	order, err := tx.Structure().NextDisplayOrder(ctx, courseID, parentID)
	if err != nil {
		return nil, fmt.Errorf("error computing display order: %w", err)
	}

	entry := &models.StructureEntry{
		ID:           uuid.New(),
		CourseID:     courseID,
		ContentType:  contentType,
		ContentID:    contentID,
		ParentID:     parentID,
		DisplayOrder: order,
	}
	if err := tx.Structure().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("error creating structure entry: %w", err)
	}
	return entry, nil
}

// resolveParent finds the module or lesson of the course a media or quiz node
// is placed under
func resolveParent(ctx context.Context, tx repositories.Store, courseID, parentID uuid.UUID) (models.ContentType, error) {
	if _, err := tx.Modules().GetByID(ctx, courseID, parentID); err == nil {
		return models.ContentModule, nil
	} else if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return "", err
	}

	if _, err := tx.Lessons().GetInCourse(ctx, courseID, parentID); err == nil {
		return models.ContentLesson, nil
	} else if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return "", err
	}
	return "", apperrors.ErrInvalidParent
}

// deleteQuizRows removes a quiz with its settings and questions. The structural
// entries are left to the caller.
func deleteQuizRows(ctx context.Context, tx repositories.Store, courseID, quizID uuid.UUID) error {
	if _, err := tx.Quizzes().DeleteSettings(ctx, quizID); err != nil {
		return fmt.Errorf("error deleting quiz settings: %w", err)
	}
	if _, err := tx.Quizzes().DeleteQuestions(ctx, quizID); err != nil {
		return fmt.Errorf("error deleting quiz questions: %w", err)
	}
	if err := tx.Quizzes().Delete(ctx, courseID, quizID); err != nil {
		return fmt.Errorf("error deleting quiz: %w", err)
	}
	return nil
}

// deleteLessonRows removes a lesson and its lesson content
func deleteLessonRows(ctx context.Context, tx repositories.Store, lesson *models.Lesson) error {
	if _, err := tx.LessonContent().DeleteByLesson(ctx, lesson.ID); err != nil {
		return fmt.Errorf("error deleting lesson content: %w", err)
	}
	if err := tx.Lessons().Delete(ctx, lesson.ModuleID, lesson.ID); err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	return nil
}

// deleteDescendants removes the content rows of every node placed below rootID
// and then every structural entry of the subtree, the root's included. Media
// rows removed along the way are returned so their objects can be cleaned up.
func deleteDescendants(ctx context.Context, tx repositories.Store, courseID, rootID uuid.UUID) ([]*models.Media, error) {
	subtree, err := tx.Structure().Subtree(ctx, courseID, rootID)
	if err != nil {
		return nil, fmt.Errorf("error loading subtree: %w", err)
	}

	var removed []*models.Media
	// leaves first, so lessons are empty by the time they are deleted
	for _, pass := range []models.ContentType{models.ContentMedia, models.ContentQuiz, models.ContentLesson} {
		for _, e := range subtree {
			if e.ContentID == rootID || e.ContentType != pass {
				continue
			}
			switch pass {
			case models.ContentMedia:
				media, err := tx.Media().GetByID(ctx, courseID, e.ContentID)
				if apperrors.Is(err, apperrors.ErrResourceNotFound) {
					continue
				}
				if err != nil {
					return nil, err
				}
				if err := tx.Media().Delete(ctx, courseID, media.ID); err != nil {
					return nil, fmt.Errorf("error deleting media: %w", err)
				}
				removed = append(removed, media)
			case models.ContentQuiz:
				err := deleteQuizRows(ctx, tx, courseID, e.ContentID)
				if err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
					return nil, err
				}
			case models.ContentLesson:
				lesson, err := tx.Lessons().GetInCourse(ctx, courseID, e.ContentID)
				if apperrors.Is(err, apperrors.ErrResourceNotFound) {
					continue
				}
				if err != nil {
					return nil, err
				}
				if err := deleteLessonRows(ctx, tx, lesson); err != nil {
					return nil, err
				}
			}
		}
	}

	if _, err := tx.Structure().DeleteSubtree(ctx, courseID, rootID); err != nil {
		return nil, fmt.Errorf("error deleting structure entries: %w", err)
	}
	return removed, nil
}

// removeObjects deletes the stored files of removed media. Failures are logged
// and never surface to the caller; the rows are already gone.
func removeObjects(ctx context.Context, storage filestorage.ObjectStorage, media []*models.Media) {
	if storage == nil {
		return
	}
	for _, m := range media {
		key, err := storage.KeyFromURL(m.FileURL)
		if err != nil {
			logger.Debug().Str("mediaID", m.ID.String()).Str("url", m.FileURL).Msg("Media file is not managed by storage, skipping")
			continue
		}
		if err := storage.DeleteObject(ctx, key); err != nil {
			logger.Warn().Err(err).Str("mediaID", m.ID.String()).Str("key", key).Msg("Failed to delete media object")
		}
	}
}
