package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dkoru/webgis-api/internal/store"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, store.ErrDuplicate},
		{
			"foreign key violation",
			&pgconn.PgError{Code: "23503", ConstraintName: "points_user_id_fkey"},
			store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.want)
		})
	}

	// Unrelated database errors pass through unchanged.
	boom := errors.New("connection reset")
	assert.Equal(t, boom, MapError(boom))
}

// fakeResult implements sql.Result with fixed values.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrPointNotFound))
	assert.ErrorIs(t,
		CheckRowsAffected(fakeResult{rows: 0}, store.ErrPointNotFound),
		store.ErrPointNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver does not support")}, store.ErrPointNotFound))
	assert.Error(t, CheckRowsAffected(nil, store.ErrPointNotFound))
}
