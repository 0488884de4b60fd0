package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// MediaService defines the interface for course media operations
type MediaService interface {
	CreateMedia(ctx context.Context, courseID uuid.UUID, req *dto.CreateMediaRequest) (*dto.MediaCreatedResponse, error)
	GetMedia(ctx context.Context, courseID, mediaID uuid.UUID) (*models.Media, error)
	ListMedia(ctx context.Context, courseID uuid.UUID) ([]*models.Media, error)
	DeleteMedia(ctx context.Context, courseID, mediaID uuid.UUID) error
	PresignUpload(ctx context.Context, courseID uuid.UUID, req *dto.PresignRequest) (*dto.PresignResponse, error)
}

type mediaServiceImpl struct {
	store      repositories.Store
	storage    filestorage.ObjectStorage
	presignTTL time.Duration
	notifier   StructureNotifier
}

// NewMediaService creates a new MediaService. Presigning fails with
// ErrStorageUnavailable when storage is nil.
func NewMediaService(store repositories.Store, storage filestorage.ObjectStorage, presignTTL time.Duration, notifier StructureNotifier) MediaService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &mediaServiceImpl{
		store:      store,
		storage:    storage,
		presignTTL: presignTTL,
		notifier:   notifierOrNop(notifier),
	}
}

// CreateMedia registers an uploaded file and places it under a module or
// lesson. The lesson is the parent when no explicit parent is given.
func (s *mediaServiceImpl) CreateMedia(ctx context.Context, courseID uuid.UUID, req *dto.CreateMediaRequest) (*dto.MediaCreatedResponse, error) {
	title, err := requiredName("title", req.Title)
	if err != nil {
		return nil, err
	}
	parentID := req.ParentID
	if parentID == nil {
		parentID = req.LessonID
	}
	if parentID == nil {
		return nil, apperrors.NewValidationError("media needs a parent_id or lesson_id")
	}

	media := &models.Media{
		ID:        uuid.New(),
		CourseID:  courseID,
		LessonID:  req.LessonID,
		Title:     title,
		FileType:  req.FileType,
		FileURL:   req.FileURL,
		CreatedAt: now(),
	}

	var entry *models.StructureEntry
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := requireCourse(ctx, tx, courseID); err != nil {
			return err
		}
		if req.LessonID != nil {
			if _, err := tx.Lessons().GetInCourse(ctx, courseID, *req.LessonID); err != nil {
				return err
			}
		}
		if _, err := resolveParent(ctx, tx, courseID, *parentID); err != nil {
			return err
		}
		if err := tx.Media().Create(ctx, media); err != nil {
			return fmt.Errorf("error creating media: %w", err)
		}
		entry, err = placeEntry(ctx, tx, courseID, models.ContentMedia, media.ID, parentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StructureChanged(courseID, "media.created")
	return &dto.MediaCreatedResponse{Media: media, Structure: entry}, nil
}

// GetMedia retrieves a media row of the course
func (s *mediaServiceImpl) GetMedia(ctx context.Context, courseID, mediaID uuid.UUID) (*models.Media, error) {
	return s.store.Media().GetByID(ctx, courseID, mediaID)
}

// ListMedia returns the media of a course, oldest first
func (s *mediaServiceImpl) ListMedia(ctx context.Context, courseID uuid.UUID) ([]*models.Media, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}
	return s.store.Media().ListByCourse(ctx, courseID)
}

// DeleteMedia removes the row and its structural entry, then the stored file
func (s *mediaServiceImpl) DeleteMedia(ctx context.Context, courseID, mediaID uuid.UUID) error {
	var media *models.Media
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		var err error
		if media, err = tx.Media().GetByID(ctx, courseID, mediaID); err != nil {
			return err
		}
		if _, err := tx.Structure().DeleteSubtree(ctx, courseID, mediaID); err != nil {
			return fmt.Errorf("error deleting structure entry: %w", err)
		}
		return tx.Media().Delete(ctx, courseID, mediaID)
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, s.storage, []*models.Media{media})
	s.notifier.StructureChanged(courseID, "media.deleted")
	return nil
}

// PresignUpload returns a direct upload URL for a new course file
func (s *mediaServiceImpl) PresignUpload(ctx context.Context, courseID uuid.UUID, req *dto.PresignRequest) (*dto.PresignResponse, error) {
	if s.storage == nil {
		return nil, apperrors.ErrStorageUnavailable
	}
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	key := filestorage.ObjectKey(courseID, req.FileName)
	upload, err := s.storage.PresignPut(ctx, key, req.ContentType, s.presignTTL)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID.String()).Str("key", key).Msg("Error presigning upload")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	fields := upload.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	return &dto.PresignResponse{
		UploadURL: upload.UploadURL,
		FileURL:   upload.FileURL,
		ObjectKey: upload.ObjectKey,
		Fields:    fields,
		ExpiresAt: upload.ExpiresAt,
	}, nil
}
