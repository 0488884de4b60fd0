package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/learnhub/internal/db"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// psql is the statement builder shared by every Postgres repository
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore implements Store on top of a pgx pool.
type PostgresStore struct {
	pg   *db.PostgresDB
	q    DBTX
	inTx bool
}

// NewPostgresStore creates a store backed by the given connection pool
func NewPostgresStore(pg *db.PostgresDB) *PostgresStore {
	return &PostgresStore{pg: pg, q: pg.Pool}
}

func (s *PostgresStore) Courses() CourseRepository             { return &courseRepo{q: s.q} }
func (s *PostgresStore) Structure() StructureRepository         { return &structureRepo{q: s.q} }
func (s *PostgresStore) Modules() ModuleRepository              { return &moduleRepo{q: s.q} }
func (s *PostgresStore) Lessons() LessonRepository              { return &lessonRepo{q: s.q} }
func (s *PostgresStore) LessonContent() LessonContentRepository { return &lessonContentRepo{q: s.q} }
func (s *PostgresStore) Media() MediaRepository                 { return &mediaRepo{q: s.q} }
func (s *PostgresStore) Quizzes() QuizRepository                { return &quizRepo{q: s.q} }
func (s *PostgresStore) Objectives() ObjectiveRepository        { return &objectiveRepo{q: s.q} }
func (s *PostgresStore) Feedback() FeedbackRepository           { return &feedbackRepo{q: s.q} }

// WithTransaction runs fn inside a database transaction
func (s *PostgresStore) WithTransaction(ctx context.Context, fn TxFn) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{pg: s.pg, q: tx, inTx: true})
	})
}

// selectAll runs a select and scans every row into T by column name
func selectAll[T any](ctx context.Context, q DBTX, b squirrel.SelectBuilder, op string) ([]*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, err
	}

	items, err := collect[T](rows)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error scanning rows")
		return nil, err
	}
	return items, nil
}

// collect scans rows into T by column name and never returns a nil slice
func collect[T any](rows pgx.Rows) ([]*T, error) {
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

// selectOne returns pgx.ErrNoRows when nothing matches
func selectOne[T any](ctx context.Context, q DBTX, b squirrel.SelectBuilder, op string) (*T, error) {
	sql, args, err := b.Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

// execStmt runs an insert, update or delete and reports the affected row count
func execStmt(ctx context.Context, q DBTX, b squirrel.Sqlizer, op string) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return 0, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing statement")
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// scalarInt scans a single integer column
func scalarInt(ctx context.Context, q DBTX, b squirrel.SelectBuilder, op string) (int, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error scanning scalar")
		return 0, err
	}
	return n, nil
}
