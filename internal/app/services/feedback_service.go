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

// FeedbackService reads and replaces the feedback settings of a course
type FeedbackService interface {
	GetSettings(ctx context.Context, courseID uuid.UUID) (*models.FeedbackSettings, error)
	UpdateSettings(ctx context.Context, courseID uuid.UUID, req *dto.FeedbackSettingsRequest) (*models.FeedbackSettings, error)
}

type feedbackServiceImpl struct {
	store repositories.Store
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(store repositories.Store) FeedbackService {
	return &feedbackServiceImpl{store: store}
}

// GetSettings returns the stored settings or the defaults
func (s *feedbackServiceImpl) GetSettings(ctx context.Context, courseID uuid.UUID) (*models.FeedbackSettings, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	settings, err := s.store.Feedback().Get(ctx, courseID)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return models.DefaultFeedbackSettings(courseID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading feedback settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the settings of a course
func (s *feedbackServiceImpl) UpdateSettings(ctx context.Context, courseID uuid.UUID, req *dto.FeedbackSettingsRequest) (*models.FeedbackSettings, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	settings := &models.FeedbackSettings{
		CourseID:          courseID,
		AllowComments:     req.AllowComments,
		AllowRatings:      req.AllowRatings,
		RequireCompletion: req.RequireCompletion,
		Anonymous:         req.Anonymous,
		UpdatedAt:         now(),
	}
	if err := s.store.Feedback().Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("error saving feedback settings: %w", err)
	}
	return settings, nil
}
