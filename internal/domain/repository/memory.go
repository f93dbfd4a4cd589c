package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"workout_api/internal/common"
	"workout_api/internal/domain/model"
)

// In-memory repositories back STORAGE_DRIVER=memory for local development and tests.

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
	}
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

type memoryWorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[string]model.Workout
}

func NewMemoryWorkoutRepository() WorkoutRepository {
	return &memoryWorkoutRepository{workouts: make(map[string]model.Workout)}
}

func (r *memoryWorkoutRepository) Create(ctx context.Context, w *model.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workouts[w.ID]; exists {
		return fmt.Errorf("workout %s already exists: %w", w.ID, common.ErrConflict)
	}
	r.workouts[w.ID] = *w
	return nil
}

func (r *memoryWorkoutRepository) FindByID(ctx context.Context, id string) (*model.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &w, nil
}

func (r *memoryWorkoutRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Workout, 0)
	for _, w := range r.workouts {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memoryWorkoutRepository) Update(ctx context.Context, w *model.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.workouts[w.ID]
	if !ok {
		return common.ErrNotFound
	}
	existing.Title = w.Title
	existing.Reps = w.Reps
	existing.Load = w.Load
	existing.UpdatedAt = w.UpdatedAt
	r.workouts[w.ID] = existing
	return nil
}

func (r *memoryWorkoutRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workouts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type memorySessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *memorySessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = r.now().Add(ttl)
	return nil
}

func (r *memorySessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
