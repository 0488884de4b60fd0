package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// ObjectiveService defines the interface for learning objective operations
type ObjectiveService interface {
	ListObjectives(ctx context.Context, courseID uuid.UUID) (*dto.ObjectivesResponse, error)
	CreateObjective(ctx context.Context, courseID uuid.UUID, req *dto.CreateObjectiveRequest) (*models.CourseObjective, error)
	DeleteObjective(ctx context.Context, courseID, objectiveID uuid.UUID) error
	ReorderObjectives(ctx context.Context, courseID uuid.UUID, updates []dto.ObjectiveOrderUpdate) ([]*models.CourseObjective, error)
	SetMainObjective(ctx context.Context, courseID uuid.UUID, text string) (*models.CourseDetails, error)
}

type objectiveServiceImpl struct {
	store repositories.Store
}

// NewObjectiveService creates a new ObjectiveService
func NewObjectiveService(store repositories.Store) ObjectiveService {
	return &objectiveServiceImpl{store: store}
}

// ListObjectives returns the main objective and the ordered objectives
func (s *objectiveServiceImpl) ListObjectives(ctx context.Context, courseID uuid.UUID) (*dto.ObjectivesResponse, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	details, err := s.store.Courses().GetDetails(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading course details: %w", err)
	}
	objectives, err := s.store.Objectives().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading objectives: %w", err)
	}
	return &dto.ObjectivesResponse{MainObjective: details.MainObjective, Objectives: objectives}, nil
}

// CreateObjective appends an objective after the current last one
func (s *objectiveServiceImpl) CreateObjective(ctx context.Context, courseID uuid.UUID, req *dto.CreateObjectiveRequest) (*models.CourseObjective, error) {
	text, err := requiredName("objective_text", req.ObjectiveText)
	if err != nil {
		return nil, err
	}

	objective := &models.CourseObjective{
		ID:            uuid.New(),
		CourseID:      courseID,
		ObjectiveText: text,
		CreatedAt:     now(),
	}
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := requireCourse(ctx, tx, courseID); err != nil {
			return err
		}
		if objective.ObjectiveOrder, err = tx.Objectives().NextOrder(ctx, courseID); err != nil {
			return fmt.Errorf("error computing objective order: %w", err)
		}
		return tx.Objectives().Create(ctx, objective)
	})
	if err != nil {
		return nil, err
	}
	return objective, nil
}

// DeleteObjective removes an objective and closes the gap it leaves
func (s *objectiveServiceImpl) DeleteObjective(ctx context.Context, courseID, objectiveID uuid.UUID) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Objectives().Delete(ctx, courseID, objectiveID); err != nil {
			return err
		}

		remaining, err := tx.Objectives().ListByCourse(ctx, courseID)
		if err != nil {
			return fmt.Errorf("error loading objectives: %w", err)
		}
		for i, o := range remaining {
			if o.ObjectiveOrder == i+1 {
				continue
			}
			if err := tx.Objectives().UpdateOrder(ctx, courseID, o.ID, i+1); err != nil {
				return fmt.Errorf("error renumbering objectives: %w", err)
			}
		}
		return nil
	})
}

// ReorderObjectives applies a batch of order changes atomically. Ids must
// belong to the course and the resulting orders must stay unique.
func (s *objectiveServiceImpl) ReorderObjectives(ctx context.Context, courseID uuid.UUID, updates []dto.ObjectiveOrderUpdate) ([]*models.CourseObjective, error) {
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError("updates cannot be empty")
	}

	seenIDs := make(map[uuid.UUID]bool, len(updates))
	seenOrders := make(map[int]bool, len(updates))
	for _, u := range updates {
		if u.ObjectiveOrder < 1 {
			return nil, apperrors.NewValidationError("objective_order must be at least 1")
		}
		if seenIDs[u.ID] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("objective %s appears more than once", u.ID))
		}
		if seenOrders[u.ObjectiveOrder] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("objective_order %d is used more than once", u.ObjectiveOrder))
		}
		seenIDs[u.ID] = true
		seenOrders[u.ObjectiveOrder] = true
	}

	var result []*models.CourseObjective
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := requireCourse(ctx, tx, courseID); err != nil {
			return err
		}
		current, err := tx.Objectives().ListByCourse(ctx, courseID)
		if err != nil {
			return fmt.Errorf("error loading objectives: %w", err)
		}

		final := make(map[uuid.UUID]int, len(current))
		for _, o := range current {
			final[o.ID] = o.ObjectiveOrder
		}
		for _, u := range updates {
			if _, ok := final[u.ID]; !ok {
				return apperrors.ErrObjectiveNotFound
			}
			final[u.ID] = u.ObjectiveOrder
		}
		used := make(map[int]bool, len(final))
		for _, order := range final {
			if used[order] {
				return apperrors.NewValidationError(fmt.Sprintf("objective_order %d would be used twice", order))
			}
			used[order] = true
		}

		for _, u := range updates {
			if err := tx.Objectives().UpdateOrder(ctx, courseID, u.ID, u.ObjectiveOrder); err != nil {
				return err
			}
		}

		result, err = tx.Objectives().ListByCourse(ctx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetMainObjective stores the main objective text of the course
func (s *objectiveServiceImpl) SetMainObjective(ctx context.Context, courseID uuid.UUID, text string) (*models.CourseDetails, error) {
	text, err := requiredName("main_objective", text)
	if err != nil {
		return nil, err
	}
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	details := &models.CourseDetails{CourseID: courseID, MainObjective: text, UpdatedAt: now()}
	if err := s.store.Courses().UpsertDetails(ctx, details); err != nil {
		return nil, fmt.Errorf("error saving main objective: %w", err)
	}
	return details, nil
}
