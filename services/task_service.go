package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TaskService manages the task status machine:
// pending -> in_progress -> done|failed. done and failed are terminal and no
// transition leaves them.
type TaskService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewTaskService(db database.Database) *TaskService {
	return &TaskService{
		db:     db,
		logger: log.With().Str("service", "task").Logger(),
	}
}

// Create records a new task in the pending state.
func (s *TaskService) Create(ctx context.Context, name, trigger string) (*models.Task, error) {
	task := &models.Task{
		Name:   name,
		Status: models.TaskStatusPending,
	}
	if trigger != "" {
		task.Trigger = &trigger
	}
	if err := s.db.TaskRepo().Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.db.TaskRepo().FindByID(ctx, id)
}

func (s *TaskService) GetMany(ctx context.Context, offset, limit int) ([]models.Task, error) {
	return s.db.TaskRepo().FindPage(ctx, offset, limit)
}

// Update applies a partial update, guarding the status transitions. A status
// change on a task already in a terminal state is a conflict.
func (s *TaskService) Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	var updated *models.Task
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		task, err := tx.TaskRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if update.Status != nil {
			if task.Status.Terminal() {
				return errs.NewConflict("Task", fmt.Sprintf("status %q is terminal", task.Status))
			}
			task.Status = *update.Status
			if update.Status.Terminal() {
				now := time.Now().UTC()
				task.EndedAt = &now
			}
		}
		if update.Description != nil {
			task.Description = update.Description
		}
		if update.Error != nil {
			task.Error = update.Error
		}
		if err := tx.TaskRepo().Save(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Start moves a pending task to in_progress.
func (s *TaskService) Start(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.db.TaskRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, errs.NewConflict("Task", fmt.Sprintf("cannot start from status %q", task.Status))
	}
	status := models.TaskStatusInProgress
	return s.Update(ctx, id, models.TaskUpdate{Status: &status})
}

// SetStatusToDone finishes the task successfully, stamping its end time.
func (s *TaskService) SetStatusToDone(ctx context.Context, id, message string) (*models.Task, error) {
	status := models.TaskStatusDone
	update := models.TaskUpdate{Status: &status}
	if message != "" {
		update.Description = &message
	}
	return s.Update(ctx, id, update)
}

// SetStatusToFailed finishes the task with an error message, stamping its end
// time.
func (s *TaskService) SetStatusToFailed(ctx context.Context, id, message string) (*models.Task, error) {
	status := models.TaskStatusFailed
	return s.Update(ctx, id, models.TaskUpdate{Status: &status, Error: &message})
}

// FailStale marks in-progress tasks untouched since cutoff as failed and
// returns how many were swept.
func (s *TaskService) FailStale(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.db.TaskRepo().FindStaleInProgress(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, task := range stale {
		if _, err := s.SetStatusToFailed(ctx, task.ID, "task timed out"); err != nil {
			s.logger.Error().Err(err).Str("taskID", task.ID).Msg("failed to sweep stale task")
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.db.TaskRepo().Delete(ctx, id)
}
