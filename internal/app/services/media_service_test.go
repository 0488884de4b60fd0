package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestPresignUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)

	resp, err := f.media.PresignUpload(ctx, courseID, &dto.PresignRequest{FileName: "My Slides.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "courses/"+courseID.String()+"/"))
	assert.Equal(t, "https://files.test/"+resp.ObjectKey, resp.FileURL)
	assert.NotNil(t, resp.Fields)
	assert.Empty(t, resp.Fields)
	assert.WithinDuration(t, time.Now().Add(time.Minute), resp.ExpiresAt, 5*time.Second)

	_, err = f.media.PresignUpload(ctx, uuid.New(), &dto.PresignRequest{FileName: "a.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestPresignUpload_NoStorage(t *testing.T) {
	f := newFixture(t)
	courseID := f.course(t)

	svc := NewMediaService(f.store, nil, 0, nil)
	_, err := svc.PresignUpload(context.Background(), courseID, &dto.PresignRequest{FileName: "a.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}

func TestCreateMedia_Parents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")

	_, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "x", FileType: "image/png", FileURL: "https://files.test/x.png"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	stray := uuid.New()
	_, err = f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "x", FileType: "image/png", FileURL: "https://files.test/x.png", ParentID: &stray})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParent)

	moduleID := m1.Module.ID
	created, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "x", FileType: "image/png", FileURL: "https://files.test/x.png", ParentID: &moduleID})
	require.NoError(t, err)
	require.NotNil(t, created.Structure.ParentID)
	assert.Equal(t, moduleID, *created.Structure.ParentID)
	assert.Nil(t, created.Media.LessonID)

	list, err := f.media.ListMedia(ctx, courseID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteMedia_RemovesObject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	moduleID := m1.Module.ID

	managed, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "a", FileType: "image/png", FileURL: "https://files.test/courses/a.png", ParentID: &moduleID})
	require.NoError(t, err)
	external, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "b", FileType: "video/mp4", FileURL: "https://youtube.example/b", ParentID: &moduleID})
	require.NoError(t, err)

	require.NoError(t, f.media.DeleteMedia(ctx, courseID, managed.Media.ID))
	require.NoError(t, f.media.DeleteMedia(ctx, courseID, external.Media.ID))

	assert.Equal(t, []string{"courses/a.png"}, f.storage.deleted)
	assert.Len(t, f.structureOf(t, courseID), 1)

	err = f.media.DeleteMedia(ctx, courseID, managed.Media.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
