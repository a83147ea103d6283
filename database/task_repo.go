package database

import (
	"context"
	"time"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type TaskRepo struct {
	*Repo[models.Task]
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{NewRepo[models.Task](db)}
}

// FindStaleInProgress returns in-progress tasks whose last write predates
// cutoff, used by the background sweeper.
func (r *TaskRepo) FindStaleInProgress(ctx context.Context, cutoff time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", models.TaskStatusInProgress).
		Where("updated_at < ?", cutoff).
		Find(&tasks).Error
	if err != nil {
		return nil, errs.FromDatabase("list stale", "Task", err)
	}
	return tasks, nil
}
