package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) Database {
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
	require.NoError(t, AutoMigrate(db))

	return New(db)
}

func TestRepoFindByIDNotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.TeamRepo().FindByID(context.Background(), "7d2adf19-6c41-4c74-9a05-ecbd4dd3e5ef")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "Team")
}

func TestRepoCreateAssignsID(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	team := &models.Team{Name: "Alpha", Headquarters: "Berlin"}
	require.NoError(t, db.TeamRepo().Create(ctx, team))
	assert.NotEmpty(t, team.ID)
	assert.False(t, team.CreatedAt.IsZero())
}

func TestRepoFindByNamesReturnsOnlyMatches(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	for _, name := range []string{"go", "infra", "db"} {
		require.NoError(t, db.TagRepo().Create(ctx, &models.Tag{Name: name}))
	}

	tags, err := db.TagRepo().FindByNames(ctx, []string{"go", "db", "ghost"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestRepoCountWithColumnFilter(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	team := &models.Team{Name: "Alpha", Headquarters: "Berlin"}
	require.NoError(t, db.TeamRepo().Create(ctx, team))

	require.NoError(t, db.UserRepo().Create(ctx, &models.User{
		Name: "alice", Email: "alice@example.com", TeamID: &team.ID,
	}))
	require.NoError(t, db.UserRepo().Create(ctx, &models.User{
		Name: "bob", Email: "bob@example.com",
	}))

	total, err := db.UserRepo().Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	affiliated, err := db.UserRepo().Count(ctx, "team_id")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affiliated)
}

func TestTeamRepoFindByName(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.TeamRepo().Create(ctx, &models.Team{Name: "Alpha", Headquarters: "Berlin"}))

	team, err := db.TeamRepo().FindByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", team.Headquarters)

	// Lookup is by exact name, not a pattern.
	_, err = db.TeamRepo().FindByName(ctx, "alpha")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	err := db.Transaction(ctx, func(tx Database) error {
		if err := tx.TeamRepo().Create(ctx, &models.Team{Name: "Alpha", Headquarters: "Berlin"}); err != nil {
			return err
		}
		return errs.NewBadRequest("abort")
	})
	require.Error(t, err)

	count, err := db.TeamRepo().Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTaskRepoFindStaleInProgress(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	inProgress := &models.Task{Name: "stuck", Status: models.TaskStatusInProgress}
	require.NoError(t, db.TaskRepo().Create(ctx, inProgress))
	require.NoError(t, db.TaskRepo().Save(ctx, inProgress))

	pending := &models.Task{Name: "waiting", Status: models.TaskStatusPending}
	require.NoError(t, db.TaskRepo().Create(ctx, pending))

	stale, err := db.TaskRepo().FindStaleInProgress(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "stuck", stale[0].Name)
}
