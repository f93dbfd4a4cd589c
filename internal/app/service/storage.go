package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"workout_api/internal/common"
)

const defaultStorageTimeout = 5 * time.Second

// storageContext bounds a single storage call.
func storageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storageErr passes through the repository's definite answers (not found,
// conflict) and reports every other failure as unavailable.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrConflict) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrServiceUnavailable, err)
}
