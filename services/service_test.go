package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema applied.
// A single connection keeps the shared-cache memory database alive for the
// test's lifetime.
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

func ptr[T any](v T) *T {
	return &v
}

func seedTeam(t *testing.T, db database.Database, name, headquarters string) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, Headquarters: headquarters}
	require.NoError(t, db.TeamRepo().Create(context.Background(), team))
	return team
}

func seedUser(t *testing.T, db database.Database, name string, teamID *string) *models.User {
	t.Helper()
	user := &models.User{
		Name:      name,
		FirstName: name,
		LastName:  "Tester",
		Email:     name + "@example.com",
		TeamID:    teamID,
	}
	require.NoError(t, db.UserRepo().Create(context.Background(), user))
	return user
}

func seedTag(t *testing.T, db database.Database, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.TagRepo().Create(context.Background(), tag))
	return tag
}

func userNames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
	}
	return names
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func teamNames(teams []models.Team) []string {
	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, team.Name)
	}
	return names
}
