package service

import (
	"context"
	"log/slog"
	"time"
	"workout_api/internal/common"
	"workout_api/internal/domain/model"
	"workout_api/internal/domain/repository"
	"workout_api/internal/observability"

	"github.com/google/uuid"
)

// WorkoutService runs workout CRUD on behalf of an authenticated user. A
// workout owned by someone else is reported exactly like a missing one.
type WorkoutService struct {
	workoutRepo    repository.WorkoutRepository
	storageTimeout time.Duration
	now            func() time.Time
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, storageTimeout time.Duration) *WorkoutService {
	return &WorkoutService{
		workoutRepo:    workoutRepo,
		storageTimeout: storageTimeout,
		now:            time.Now,
	}
}

func (s *WorkoutService) List(ctx context.Context, userID string) ([]model.Workout, error) {
	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	workouts, err := s.workoutRepo.ListByOwner(sctx, userID)
	if err != nil {
		return nil, storageErr("list workouts", err)
	}
	return workouts, nil
}

func (s *WorkoutService) Get(ctx context.Context, userID, id string) (*model.Workout, error) {
	return s.findOwned(ctx, userID, id)
}

func (s *WorkoutService) Create(ctx context.Context, userID string, req WorkoutRequest) (*model.Workout, error) {
	patch, err := req.parse(true)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	workout := patch.Apply(model.Workout{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	})

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.workoutRepo.Create(sctx, &workout); err != nil {
		return nil, storageErr("create workout", err)
	}

	observability.RecordWorkoutMutation(observability.OpCreate)
	slog.DebugContext(ctx, "workout created", "workout_id", workout.ID, "owner", userID)
	return &workout, nil
}

// Update validates the patch before any storage access, so a rejected patch
// never touches the stored record.
func (s *WorkoutService) Update(ctx context.Context, userID, id string, req WorkoutRequest) (*model.Workout, error) {
	patch, err := req.parse(false)
	if err != nil {
		return nil, err
	}

	existing, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	updated.UpdatedAt = s.timestamp()

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.workoutRepo.Update(sctx, &updated); err != nil {
		return nil, storageErr("update workout", err)
	}

	observability.RecordWorkoutMutation(observability.OpUpdate)
	return &updated, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.workoutRepo.Delete(sctx, id); err != nil {
		return storageErr("delete workout", err)
	}

	observability.RecordWorkoutMutation(observability.OpDelete)
	return nil
}

// findOwned collapses "malformed id", "no such id" and "someone else's id"
// into common.ErrNotFound.
func (s *WorkoutService) findOwned(ctx context.Context, userID, id string) (*model.Workout, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	workout, err := s.workoutRepo.FindByID(sctx, id)
	if err != nil {
		return nil, storageErr("find workout", err)
	}
	if workout.OwnerID != userID {
		return nil, common.ErrNotFound
	}
	return workout, nil
}

// timestamp is truncated to what Postgres timestamptz keeps.
func (s *WorkoutService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
