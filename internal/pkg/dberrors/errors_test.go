package dberrors

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestTranslate(t *testing.T) {
	notFound := apperrors.ErrModuleNotFound
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, notFound},
		{"unique", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "uq_structure_order"}, apperrors.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: ForeignKeyViolation}, apperrors.ErrConflict},
		{"check", &pgconn.PgError{Code: CheckViolation}, apperrors.ErrValidationFailed},
		{"other pg", &pgconn.PgError{Code: "57014"}, nil},
		{"plain", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in, notFound)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "uq_structure_order"}
	assert.True(t, IsDuplicateConstraintError(err, "uq_structure_order"))
	assert.False(t, IsDuplicateConstraintError(err, "other"))
	assert.False(t, IsDuplicateConstraintError(errors.New("x"), "uq_structure_order"))
}
