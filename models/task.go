package models

import "time"

// TaskStatus is the lifecycle state of a background task:
// pending -> in_progress -> done|failed. done and failed are terminal.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusFailed     TaskStatus = "failed"
)

func (s TaskStatus) Terminal() bool {
	return s == TaskStatusDone || s == TaskStatusFailed
}

// Task records one background job execution
type Task struct {
	Base
	Name        string     `json:"name" db:"name" gorm:"type:text;not null"`
	Status      TaskStatus `json:"status" db:"status" gorm:"type:text;not null;default:pending"`
	Description *string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Trigger     *string    `json:"trigger,omitempty" db:"trigger" gorm:"type:text"`
	Error       *string    `json:"error,omitempty" db:"error" gorm:"type:text"`
	EndedAt     *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

func (Task) EntityName() string {
	return "Task"
}

// TaskUpdate is a partial update applied through the task service, which
// guards the status transitions.
type TaskUpdate struct {
	Status      *TaskStatus `json:"status,omitempty"`
	Description *string     `json:"description,omitempty"`
	Error       *string     `json:"error,omitempty"`
}

// TaskRead is the read-only view of a task, with the duration computed once
// the task reached a terminal state.
type TaskRead struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Status              TaskStatus `json:"status"`
	Description         *string    `json:"description,omitempty"`
	Trigger             *string    `json:"trigger,omitempty"`
	Error               *string    `json:"error,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	EndedAt             *time.Time `json:"ended_at,omitempty"`
	TaskDurationSeconds *int       `json:"task_duration_seconds,omitempty"`
}

func NewTaskRead(task Task) TaskRead {
	read := TaskRead{
		ID:          task.ID,
		Name:        task.Name,
		Status:      task.Status,
		Description: task.Description,
		Trigger:     task.Trigger,
		Error:       task.Error,
		CreatedAt:   task.CreatedAt,
		EndedAt:     task.EndedAt,
	}
	if task.Status.Terminal() && task.EndedAt != nil {
		seconds := int(task.EndedAt.Sub(task.CreatedAt).Seconds())
		read.TaskDurationSeconds = &seconds
	}
	return read
}
