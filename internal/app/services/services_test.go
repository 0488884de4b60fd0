package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
)

type recordingNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (n *recordingNotifier) StructureChanged(_ uuid.UUID, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.reasons...)
}

// fakeStorage records deleted keys and serves files under https://files.test/
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeStorage) PresignPut(_ context.Context, key, _ string, ttl time.Duration) (*filestorage.PresignedUpload, error) {
	return &filestorage.PresignedUpload{
		UploadURL: "https://files.test/" + key + "?sig=x",
		FileURL:   "https://files.test/" + key,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(fileURL string) (string, error) {
	const prefix = "https://files.test/"
	if len(fileURL) <= len(prefix) || fileURL[:len(prefix)] != prefix {
		return "", filestorage.ErrInvalidKey
	}
	return fileURL[len(prefix):], nil
}

// failingStore makes the quiz settings delete fail inside and outside transactions
type failingStore struct {
	repositories.Store
	err error
}

func (f *failingStore) Quizzes() repositories.QuizRepository {
	return &failingQuizzes{QuizRepository: f.Store.Quizzes(), err: f.err}
}

func (f *failingStore) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	return f.Store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		return fn(ctx, &failingStore{Store: tx, err: f.err})
	})
}

type failingQuizzes struct {
	repositories.QuizRepository
	err error
}

func (q *failingQuizzes) DeleteSettings(context.Context, uuid.UUID) (int64, error) {
	return 0, q.err
}

var errInjected = errors.New("injected failure")

// fixture wires every service on one in-memory store
type fixture struct {
	store     *memory.Store
	notifier  *recordingNotifier
	storage   *fakeStorage
	courses   CourseService
	structure StructureService
	modules   ModuleService
	lessons   LessonService
	media     MediaService
	quizzes   QuizService
	objs      ObjectiveService
	feedback  FeedbackService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewStore(),
		notifier: &recordingNotifier{},
		storage:  &fakeStorage{},
	}
	f.courses = NewCourseService(f.store, f.storage, f.notifier)
	f.structure = NewStructureService(f.store, f.notifier)
	f.modules = NewModuleService(f.store, f.storage, f.notifier)
	f.lessons = NewLessonService(f.store, f.storage, f.notifier)
	f.media = NewMediaService(f.store, f.storage, time.Minute, f.notifier)
	f.quizzes = NewQuizService(f.store, f.notifier)
	f.objs = NewObjectiveService(f.store)
	f.feedback = NewFeedbackService(f.store)
	return f
}

func (f *fixture) course(t *testing.T) uuid.UUID {
	t.Helper()
	c, err := f.courses.CreateCourse(context.Background(), &dto.CreateCourseRequest{Title: "Go in practice"})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) module(t *testing.T, courseID uuid.UUID, name string) *dto.ModuleCreatedResponse {
	t.Helper()
	m, err := f.modules.CreateModule(context.Background(), courseID, &dto.CreateModuleRequest{Name: name})
	require.NoError(t, err)
	return m
}

func (f *fixture) lesson(t *testing.T, courseID, moduleID uuid.UUID, name string) *dto.LessonCreatedResponse {
	t.Helper()
	l, err := f.lessons.CreateLesson(context.Background(), courseID, moduleID, &dto.CreateLessonRequest{Name: name})
	require.NoError(t, err)
	return l
}

func (f *fixture) quiz(t *testing.T, courseID, parentID uuid.UUID, name string) *dto.QuizCreatedResponse {
	t.Helper()
	q, err := f.quizzes.CreateQuiz(context.Background(), courseID, &dto.CreateQuizRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return q
}

func (f *fixture) structureOf(t *testing.T, courseID uuid.UUID) []*models.StructureEntry {
	t.Helper()
	entries, err := f.store.Structure().ListByCourse(context.Background(), courseID)
	require.NoError(t, err)
	return entries
}
