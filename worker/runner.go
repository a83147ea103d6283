package worker

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rosterhq/team-registry-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runner executes queued jobs in-process, recording every execution as a
// Task row driven through the task status machine. It is a stand-in for an
// external job queue, not a broker.
type Runner struct {
	tasks  *services.TaskService
	emails *services.EmailService
	logger zerolog.Logger

	jobs chan job
	cron *cron.Cron

	workers     int
	maxAttempts int
	retryDelay  time.Duration
	staleAfter  time.Duration
}

type job struct {
	taskID string
	run    func(ctx context.Context) error
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

func WithMaxAttempts(n int) Option {
	return func(r *Runner) { r.maxAttempts = n }
}

func WithRetryDelay(d time.Duration) Option {
	return func(r *Runner) { r.retryDelay = d }
}

func WithStaleAfter(d time.Duration) Option {
	return func(r *Runner) { r.staleAfter = d }
}

func New(db database.Database, opts ...Option) *Runner {
	runner := &Runner{
		tasks:       services.NewTaskService(db),
		emails:      services.NewEmailService(db),
		logger:      log.With().Str("component", "worker").Logger(),
		jobs:        make(chan job, 64),
		cron:        cron.New(),
		workers:     2,
		maxAttempts: 3,
		retryDelay:  time.Second,
		staleAfter:  10 * time.Minute,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run blocks until ctx is canceled, draining the job channel with a fixed
// worker pool and sweeping stale in-progress tasks on a schedule.
func (r *Runner) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case queued := <-r.jobs:
					r.execute(ctx, queued)
				}
			}
		})
	}

	if _, err := r.cron.AddFunc("@every 1m", func() { r.sweep() }); err != nil {
		return err
	}
	r.cron.Start()
	group.Go(func() error {
		<-ctx.Done()
		<-r.cron.Stop().Done()
		return nil
	})

	r.logger.Info().Int("workers", r.workers).Msg("worker runner started")
	return group.Wait()
}

// Enqueue records a pending Task and queues its job. When the queue is full
// the task is immediately failed rather than blocking the caller.
func (r *Runner) Enqueue(ctx context.Context, name, trigger string, run func(ctx context.Context) error) (*models.Task, error) {
	task, err := r.tasks.Create(ctx, name, trigger)
	if err != nil {
		return nil, err
	}
	select {
	case r.jobs <- job{taskID: task.ID, run: run}:
	default:
		if _, failErr := r.tasks.SetStatusToFailed(ctx, task.ID, "worker queue full"); failErr != nil {
			r.logger.Error().Err(failErr).Str("taskID", task.ID).Msg("failed to mark overflowed task")
		}
		return nil, errs.NewApiErr(http.StatusServiceUnavailable, "worker queue is full")
	}
	return task, nil
}

func (r *Runner) execute(ctx context.Context, queued job) {
	// Status writes must survive shutdown cancellation so no task is left
	// dangling in_progress.
	bookkeeping := context.WithoutCancel(ctx)

	if _, err := r.tasks.Start(bookkeeping, queued.taskID); err != nil {
		r.logger.Error().Err(err).Str("taskID", queued.taskID).Msg("failed to start task")
		return
	}

	var runErr error
	for attempt := 1; ; attempt++ {
		runErr = queued.run(ctx)
		if runErr == nil || attempt >= r.maxAttempts {
			break
		}
		r.logger.Warn().
			Err(runErr).
			Int("attempt", attempt).
			Str("taskID", queued.taskID).
			Msg("job attempt failed, retrying")
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		case <-time.After(r.retryDelay):
			continue
		}
		break
	}

	if runErr != nil {
		if _, err := r.tasks.SetStatusToFailed(bookkeeping, queued.taskID, runErr.Error()); err != nil {
			r.logger.Error().Err(err).Str("taskID", queued.taskID).Msg("failed to record task failure")
		}
		return
	}
	if _, err := r.tasks.SetStatusToDone(bookkeeping, queued.taskID, ""); err != nil {
		r.logger.Error().Err(err).Str("taskID", queued.taskID).Msg("failed to record task completion")
	}
}

func (r *Runner) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-r.staleAfter)
	swept, err := r.tasks.FailStale(ctx, cutoff)
	if err != nil {
		r.logger.Error().Err(err).Msg("stale task sweep failed")
		return
	}
	if swept > 0 {
		r.logger.Warn().Int("swept", swept).Msg("failed stale in-progress tasks")
	}
}
