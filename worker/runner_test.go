package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db))

	return database.New(db)
}

func startRunner(t *testing.T, db database.Database, opts ...Option) *Runner {
	t.Helper()

	runner := New(db, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return runner
}

func waitForStatus(t *testing.T, db database.Database, taskID string, want models.TaskStatus) *models.Task {
	t.Helper()

	var task *models.Task
	require.Eventually(t, func() bool {
		found, err := db.TaskRepo().FindByID(context.Background(), taskID)
		if err != nil {
			return false
		}
		task = found
		return task.Status == want
	}, 5*time.Second, 10*time.Millisecond)
	return task
}

func TestRunnerExecutesJobToDone(t *testing.T) {
	db := newTestDB(t)
	runner := startRunner(t, db, WithWorkers(1))

	task, err := runner.Enqueue(context.Background(), "quick", "test", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)

	finished := waitForStatus(t, db, task.ID, models.TaskStatusDone)
	require.NotNil(t, finished.EndedAt)
	assert.Nil(t, finished.Error)
}

func TestRunnerRetriesThenFails(t *testing.T) {
	db := newTestDB(t)
	runner := startRunner(t, db, WithWorkers(1), WithMaxAttempts(3), WithRetryDelay(time.Millisecond))

	var attempts atomic.Int32
	task, err := runner.Enqueue(context.Background(), "doomed", "test", func(ctx context.Context) error {
		attempts.Add(1)
		return errors.New("division by zero")
	})
	require.NoError(t, err)

	failed := waitForStatus(t, db, task.ID, models.TaskStatusFailed)
	assert.EqualValues(t, 3, attempts.Load())
	require.NotNil(t, failed.Error)
	assert.Equal(t, "division by zero", *failed.Error)
	require.NotNil(t, failed.EndedAt)
}

func TestRunnerRetrySucceedsBeforeExhaustion(t *testing.T) {
	db := newTestDB(t)
	runner := startRunner(t, db, WithWorkers(1), WithMaxAttempts(3), WithRetryDelay(time.Millisecond))

	var attempts atomic.Int32
	task, err := runner.Enqueue(context.Background(), "flaky", "test", func(ctx context.Context) error {
		if attempts.Add(1) < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)

	finished := waitForStatus(t, db, task.ID, models.TaskStatusDone)
	assert.EqualValues(t, 2, attempts.Load())
	assert.Nil(t, finished.Error)
}
