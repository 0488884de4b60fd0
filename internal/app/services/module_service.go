package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// ModuleService defines the interface for module operations
type ModuleService interface {
	CreateModule(ctx context.Context, courseID uuid.UUID, req *dto.CreateModuleRequest) (*dto.ModuleCreatedResponse, error)
	GetModule(ctx context.Context, courseID, moduleID uuid.UUID) (*models.Module, error)
	ListModules(ctx context.Context, courseID uuid.UUID) ([]*models.Module, error)
	UpdateModule(ctx context.Context, courseID, moduleID uuid.UUID, req *dto.UpdateModuleRequest) (*models.Module, error)
	DeleteModule(ctx context.Context, courseID, moduleID uuid.UUID) error
}

type moduleServiceImpl struct {
	store    repositories.Store
	storage  filestorage.ObjectStorage
	notifier StructureNotifier
}

// NewModuleService creates a new ModuleService. storage may be nil.
func NewModuleService(store repositories.Store, storage filestorage.ObjectStorage, notifier StructureNotifier) ModuleService {
	return &moduleServiceImpl{
		store:    store,
		storage:  storage,
		notifier: notifierOrNop(notifier),
	}
}

// CreateModule stores the module and appends it as the last root of the tree
func (s *moduleServiceImpl) CreateModule(ctx context.Context, courseID uuid.UUID, req *dto.CreateModuleRequest) (*dto.ModuleCreatedResponse, error) {
	name, err := requiredName("name", req.Name)
	if err != nil {
		return nil, err
	}

	module := &models.Module{
		ID:        uuid.New(),
		CourseID:  courseID,
		Name:      name,
		Number:    req.Number,
		CreatedAt: now(),
	}

	var entry *models.StructureEntry
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := requireCourse(ctx, tx, courseID); err != nil {
			return err
		}
		if err := tx.Modules().Create(ctx, module); err != nil {
			return fmt.Errorf("error creating module: %w", err)
		}
		entry, err = placeEntry(ctx, tx, courseID, models.ContentModule, module.ID, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StructureChanged(courseID, "module.created")
	return &dto.ModuleCreatedResponse{Module: module, Structure: entry}, nil
}

// GetModule retrieves a module of the course
func (s *moduleServiceImpl) GetModule(ctx context.Context, courseID, moduleID uuid.UUID) (*models.Module, error) {
	return s.store.Modules().GetByID(ctx, courseID, moduleID)
}

// ListModules returns the modules of a course
func (s *moduleServiceImpl) ListModules(ctx context.Context, courseID uuid.UUID) ([]*models.Module, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}
	return s.store.Modules().ListByCourse(ctx, courseID)
}

// UpdateModule applies the non-nil fields of req
func (s *moduleServiceImpl) UpdateModule(ctx context.Context, courseID, moduleID uuid.UUID, req *dto.UpdateModuleRequest) (*models.Module, error) {
	module, err := s.store.Modules().GetByID(ctx, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if module.Name, err = requiredName("name", *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Number != nil {
		module.Number = *req.Number
	}

	if err := s.store.Modules().Update(ctx, module); err != nil {
		return nil, fmt.Errorf("error updating module: %w", err)
	}
	s.notifier.StructureChanged(courseID, "module.updated")
	return module, nil
}

// DeleteModule removes the module, its lessons with their content, every media
// and quiz placed under it, and the structural entries of the whole subtree
func (s *moduleServiceImpl) DeleteModule(ctx context.Context, courseID, moduleID uuid.UUID) error {
	var removed []*models.Media
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Modules().GetByID(ctx, courseID, moduleID); err != nil {
			return err
		}

		var err error
		if removed, err = deleteDescendants(ctx, tx, courseID, moduleID); err != nil {
			return err
		}

		// lessons of the module that were never placed in the tree
		lessons, err := tx.Lessons().ListByModule(ctx, moduleID)
		if err != nil {
			return fmt.Errorf("error listing module lessons: %w", err)
		}
		for _, lesson := range lessons {
			orphans, err := deleteDescendants(ctx, tx, courseID, lesson.ID)
			if err != nil {
				return err
			}
			removed = append(removed, orphans...)
			if err := deleteLessonRows(ctx, tx, lesson); err != nil {
				return err
			}
		}

		if err := tx.Modules().Delete(ctx, courseID, moduleID); err != nil {
			return fmt.Errorf("error deleting module: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, s.storage, removed)
	s.notifier.StructureChanged(courseID, "module.deleted")
	logger.Info().Str("courseID", courseID.String()).Str("moduleID", moduleID.String()).Msg("Module deleted")
	return nil
}
