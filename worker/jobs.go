package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rosterhq/team-registry-backend/models"
)

// EnqueueSleepDemo queues a job that just sleeps, mirroring the classic
// queue-demo task.
func (r *Runner) EnqueueSleepDemo(ctx context.Context, duration time.Duration) (*models.Task, error) {
	return r.Enqueue(ctx, "sleep_demo", "api", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(duration):
		}
		r.logger.Info().Msg("Finished task: sleep_demo")
		return nil
	})
}

// EnqueueFailingDemo queues a job that always errors, exercising the retry
// path until the task ends up failed.
func (r *Runner) EnqueueFailingDemo(ctx context.Context) (*models.Task, error) {
	return r.Enqueue(ctx, "failing_demo", "api", func(ctx context.Context) error {
		return errors.New("division by zero")
	})
}

// EnqueueUserUpdateNotification queues the email telling a user which of
// their properties changed.
func (r *Runner) EnqueueUserUpdateNotification(
	ctx context.Context,
	user models.User,
	update models.UserUpdate,
	before models.UserReadComposite,
) (*models.Task, error) {
	return r.Enqueue(ctx, "user_update_notification", "user update", func(ctx context.Context) error {
		_, err := r.emails.SendForUserUpdate(ctx, &user, update, before)
		return err
	})
}
