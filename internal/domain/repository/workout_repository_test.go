package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"
	"workout_api/internal/common"
	"workout_api/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workoutColumns = []string{"id", "owner_id", "title", "reps", "load", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func sampleWorkout() *model.Workout {
	ts := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	return &model.Workout{
		ID:        "2f0c7a8e-4f2d-4b55-8d7e-1f1f6d8f0a01",
		OwnerID:   "9b3d0e6c-2d44-4d7f-a3f4-0c4f9a4c5e10",
		Title:     "Bench",
		Reps:      10,
		Load:      40,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestPgWorkoutRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)
	w := sampleWorkout()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workouts")).
		WithArgs(w.ID, w.OwnerID, w.Title, w.Reps, w.Load, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), w))
}

func TestPgWorkoutRepositoryFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)
	w := sampleWorkout()

	mock.ExpectQuery(regexp.QuoteMeta("FROM workouts WHERE id = $1")).
		WithArgs(w.ID).
		WillReturnRows(sqlmock.NewRows(workoutColumns).
			AddRow(w.ID, w.OwnerID, w.Title, w.Reps, w.Load, w.CreatedAt, w.UpdatedAt))

	got, err := repo.FindByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestPgWorkoutRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workouts WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(workoutColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgWorkoutRepositoryListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)
	older := sampleWorkout()
	newer := sampleWorkout()
	newer.ID = "7d1e2c3b-0000-4000-8000-000000000002"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(older.OwnerID).
		WillReturnRows(sqlmock.NewRows(workoutColumns).
			AddRow(newer.ID, newer.OwnerID, newer.Title, newer.Reps, newer.Load, newer.CreatedAt, newer.UpdatedAt).
			AddRow(older.ID, older.OwnerID, older.Title, older.Reps, older.Load, older.CreatedAt, older.UpdatedAt))

	got, err := repo.ListByOwner(context.Background(), older.OwnerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestPgWorkoutRepositoryListByOwnerEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workouts WHERE owner_id = $1")).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows(workoutColumns))

	got, err := repo.ListByOwner(context.Background(), "owner")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPgWorkoutRepositoryUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)
	w := sampleWorkout()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE workouts SET")).
		WithArgs(w.Title, w.Reps, w.Load, w.UpdatedAt, w.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), w))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE workouts SET")).
		WithArgs(w.Title, w.Reps, w.Load, w.UpdatedAt, w.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), w), common.ErrNotFound)
}

func TestPgWorkoutRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workouts WHERE id = $1")).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "id-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workouts WHERE id = $1")).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "id-1"), common.ErrNotFound)
}

func TestPgWorkoutRepositoryPropagatesDriverErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgWorkoutRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("FROM workouts WHERE owner_id = $1")).
		WithArgs("owner").
		WillReturnError(boom)

	_, err := repo.ListByOwner(context.Background(), "owner")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestPgUserRepositoryCreateConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	user := &model.User{ID: "u1", Email: "a@example.com", HashedPassword: "hash", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, user.HashedPassword, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestPgUserRepositoryFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
			AddRow("u1", "a@example.com", "hash", created))

	user, err := repo.FindByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.HashedPassword)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}))

	_, err = repo.FindByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
