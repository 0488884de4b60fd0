package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// ErrNotCourseOwner is returned when an author edits a course assigned to someone else
var ErrNotCourseOwner = apperrors.NewForbiddenError("you can only change courses you teach")

// AuthorizationService decides who may change a course
type AuthorizationService struct {
	courses repositories.CourseRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courses repositories.CourseRepository) *AuthorizationService {
	return &AuthorizationService{courses: courses}
}

// CanModifyCourse reports whether the caller may change the course. Admins can
// change any course; instructors and providers only the ones assigned to them
// or not assigned at all. Students never can.
func (s *AuthorizationService) CanModifyCourse(ctx context.Context, courseID uuid.UUID, userID string, role models.RoleType) (bool, error) {
	switch {
	case role == models.RoleAdmin:
		return true, nil
	case !role.CanAuthor():
		return false, nil
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, err
		}
		logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Error getting course in CanModifyCourse")
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	if course.InstructorID == nil {
		return true, nil
	}
	return *course.InstructorID == userID, nil
}

// ValidateCourseOwnership returns ErrNotCourseOwner when the caller may not
// change the course
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, courseID uuid.UUID, userID string, role models.RoleType) error {
	canModify, err := s.CanModifyCourse(ctx, courseID, userID, role)
	if err != nil {
		return err
	}
	if !canModify {
		logger.Warn().
			Str("courseID", courseID.String()).
			Str("userID", userID).
			Str("role", string(role)).
			Msg("Course change denied")
		return ErrNotCourseOwner
	}
	return nil
}
