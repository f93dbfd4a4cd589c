package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"workout_api/internal/common"
	"workout_api/internal/domain/model"
)

// WorkoutRepository persists workouts keyed by id. Lookups by id return
// common.ErrNotFound when no row exists; ownership is the caller's concern.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *model.Workout) error
	FindByID(ctx context.Context, id string) (*model.Workout, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Workout, error)
	Update(ctx context.Context, workout *model.Workout) error
	Delete(ctx context.Context, id string) error
}

type pgWorkoutRepository struct {
	db *sql.DB
}

func NewPgWorkoutRepository(db *sql.DB) WorkoutRepository {
	return &pgWorkoutRepository{db: db}
}

func (r *pgWorkoutRepository) Create(ctx context.Context, w *model.Workout) error {
	query := `INSERT INTO workouts (id, owner_id, title, reps, load, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.OwnerID, w.Title, w.Reps, w.Load, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Create: %w", err)
	}
	return nil
}

func (r *pgWorkoutRepository) FindByID(ctx context.Context, id string) (*model.Workout, error) {
	query := `SELECT id, owner_id, title, reps, load, created_at, updated_at
	          FROM workouts WHERE id = $1`

	w := &model.Workout{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.OwnerID, &w.Title, &w.Reps, &w.Load, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgWorkoutRepository.FindByID: %w", err)
	}
	return w, nil
}

func (r *pgWorkoutRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Workout, error) {
	query := `SELECT id, owner_id, title, reps, load, created_at, updated_at
	          FROM workouts WHERE owner_id = $1
	          ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	workouts := make([]model.Workout, 0)
	for rows.Next() {
		var w model.Workout
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Reps, &w.Load, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgWorkoutRepository.ListByOwner scan: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.ListByOwner rows: %w", err)
	}
	return workouts, nil
}

// Update overwrites the mutable fields of the row with w.ID. The owner is never changed.
func (r *pgWorkoutRepository) Update(ctx context.Context, w *model.Workout) error {
	query := `UPDATE workouts SET title = $1, reps = $2, load = $3, updated_at = $4
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, w.Title, w.Reps, w.Load, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Update: %w", err)
	}
	return requireAffected(res, "pgWorkoutRepository.Update")
}

func (r *pgWorkoutRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Delete: %w", err)
	}
	return requireAffected(res, "pgWorkoutRepository.Delete")
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
