package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestCanModifyCourse(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := "instructor-1"
	owned := &models.Course{ID: uuid.New(), Title: "Owned", InstructorID: &owner}
	open := &models.Course{ID: uuid.New(), Title: "Unassigned"}
	require.NoError(t, store.Courses().Create(ctx, owned))
	require.NoError(t, store.Courses().Create(ctx, open))

	authz := NewAuthorizationService(store.Courses())

	tests := []struct {
		name   string
		course uuid.UUID
		user   string
		role   models.RoleType
		want   bool
	}{
		{"owner", owned.ID, owner, models.RoleInstructor, true},
		{"other instructor", owned.ID, "instructor-2", models.RoleInstructor, false},
		{"admin", owned.ID, "admin-1", models.RoleAdmin, true},
		{"student", owned.ID, owner, models.RoleStudent, false},
		{"provider on unassigned", open.ID, "provider-1", models.RoleProvider, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.CanModifyCourse(ctx, tt.course, tt.user, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCourseOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := "instructor-1"
	course := &models.Course{ID: uuid.New(), Title: "Owned", InstructorID: &owner}
	require.NoError(t, store.Courses().Create(ctx, course))
	authz := NewAuthorizationService(store.Courses())

	assert.NoError(t, authz.ValidateCourseOwnership(ctx, course.ID, owner, models.RoleInstructor))
	assert.ErrorIs(t, authz.ValidateCourseOwnership(ctx, course.ID, "someone", models.RoleInstructor), ErrNotCourseOwner)

	err := authz.ValidateCourseOwnership(ctx, uuid.New(), owner, models.RoleInstructor)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
