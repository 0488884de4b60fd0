package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/coursetree"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// StructureService builds and replaces the content tree of a course
type StructureService interface {
	GetStructure(ctx context.Context, courseID uuid.UUID) ([]*coursetree.Node, error)
	ReplaceStructure(ctx context.Context, courseID uuid.UUID, roots []*coursetree.Node) ([]*coursetree.Node, error)
}

type structureServiceImpl struct {
	store    repositories.Store
	notifier StructureNotifier
}

// NewStructureService creates a new StructureService
func NewStructureService(store repositories.Store, notifier StructureNotifier) StructureService {
	return &structureServiceImpl{
		store:    store,
		notifier: notifierOrNop(notifier),
	}
}

// courseContent is every row a course tree can point at
type courseContent struct {
	entries []*models.StructureEntry
	modules []*models.Module
	lessons []*models.Lesson
	content map[uuid.UUID][]*models.LessonContent
	media   []*models.Media
	quizzes []*models.Quiz
}

func loadCourseContent(ctx context.Context, store repositories.Store, courseID uuid.UUID) (*courseContent, error) {
	var (
		cc = &courseContent{content: make(map[uuid.UUID][]*models.LessonContent)}
		err error
	)
	if cc.entries, err = store.Structure().ListByCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error loading structure: %w", err)
	}
	if cc.modules, err = store.Modules().ListByCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error loading modules: %w", err)
	}
	if cc.lessons, err = store.Lessons().ListByCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error loading lessons: %w", err)
	}
	items, err := store.LessonContent().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading lesson content: %w", err)
	}
	for _, item := range items {
		cc.content[item.LessonID] = append(cc.content[item.LessonID], item)
	}
	if cc.media, err = store.Media().ListByCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error loading media: %w", err)
	}
	if cc.quizzes, err = store.Quizzes().ListByCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error loading quizzes: %w", err)
	}
	return cc, nil
}

func (cc *courseContent) build() []*coursetree.Node {
	return coursetree.Build(cc.entries, cc.modules, cc.lessons, cc.content, cc.media, cc.quizzes)
}

// owned maps every content id of the course to its type
func (cc *courseContent) owned() map[uuid.UUID]models.ContentType {
	ids := make(map[uuid.UUID]models.ContentType)
	for _, m := range cc.modules {
		ids[m.ID] = models.ContentModule
	}
	for _, l := range cc.lessons {
		ids[l.ID] = models.ContentLesson
	}
	for _, m := range cc.media {
		ids[m.ID] = models.ContentMedia
	}
	for _, q := range cc.quizzes {
		ids[q.ID] = models.ContentQuiz
	}
	return ids
}

// GetStructure returns the hydrated forest of the course
func (s *structureServiceImpl) GetStructure(ctx context.Context, courseID uuid.UUID) ([]*coursetree.Node, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	cc, err := loadCourseContent(ctx, s.store, courseID)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Error loading course structure")
		return nil, err
	}
	return cc.build(), nil
}

// ReplaceStructure validates an edited tree and stores it as the course's
// complete structure. Lessons dragged under another module follow it.
func (s *structureServiceImpl) ReplaceStructure(ctx context.Context, courseID uuid.UUID, roots []*coursetree.Node) ([]*coursetree.Node, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}

	entries, err := coursetree.Flatten(courseID, roots)
	if err != nil {
		if errors.Is(err, coursetree.ErrInvalidTree) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, err
	}

	var tree []*coursetree.Node
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		cc, err := loadCourseContent(ctx, tx, courseID)
		if err != nil {
			return err
		}

		owned := cc.owned()
		for _, e := range entries {
			t, ok := owned[e.ContentID]
			if !ok {
				return apperrors.NewValidationError(fmt.Sprintf("%s %s does not belong to the course", e.ContentType, e.ContentID))
			}
			if t != e.ContentType {
				return apperrors.NewValidationError(fmt.Sprintf("%s is a %s, not a %s", e.ContentID, t, e.ContentType))
			}
		}

		if err := tx.Structure().ReplaceAll(ctx, courseID, entries); err != nil {
			return fmt.Errorf("error replacing structure: %w", err)
		}

		lessonModule := make(map[uuid.UUID]uuid.UUID, len(cc.lessons))
		for _, l := range cc.lessons {
			lessonModule[l.ID] = l.ModuleID
		}
		for _, e := range entries {
			if e.ContentType != models.ContentLesson || e.ParentID == nil || lessonModule[e.ContentID] == *e.ParentID {
				continue
			}
			if err := tx.Lessons().SetModule(ctx, e.ContentID, *e.ParentID); err != nil {
				return fmt.Errorf("error moving lesson: %w", err)
			}
			for _, l := range cc.lessons {
				if l.ID == e.ContentID {
					l.ModuleID = *e.ParentID
				}
			}
		}

		// media keeps lesson_id pointing at its enclosing lesson, if any
		mediaLesson := make(map[uuid.UUID]*uuid.UUID, len(entries))
		for _, e := range entries {
			if e.ContentType != models.ContentMedia {
				continue
			}
			var lessonID *uuid.UUID
			if e.ParentID != nil && owned[*e.ParentID] == models.ContentLesson {
				id := *e.ParentID
				lessonID = &id
			}
			mediaLesson[e.ContentID] = lessonID
		}
		for _, m := range cc.media {
			target, ok := mediaLesson[m.ID]
			if !ok || sameLesson(m.LessonID, target) {
				continue
			}
			if err := tx.Media().SetLesson(ctx, m.ID, target); err != nil {
				return fmt.Errorf("error moving media: %w", err)
			}
			m.LessonID = target
		}

		cc.entries = entries
		tree = cc.build()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StructureChanged(courseID, "structure.replaced")
	logger.Info().Str("courseID", courseID.String()).Int("entries", len(entries)).Msg("Course structure replaced")
	return tree, nil
}

func sameLesson(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
