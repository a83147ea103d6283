package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamServiceCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	created, err := service.Create(ctx, models.TeamCreate{Name: "Alpha", Headquarters: "Berlin"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", fetched.Name)
	assert.Equal(t, "Berlin", fetched.Headquarters)
	assert.Empty(t, fetched.Users)
	assert.Empty(t, fetched.Tags)
}

func TestTeamServiceCreateDuplicateNameIsConflict(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	_, err := service.Create(ctx, models.TeamCreate{Name: "Alpha", Headquarters: "Berlin"})
	require.NoError(t, err)

	_, err = service.Create(ctx, models.TeamCreate{Name: "Alpha", Headquarters: "Lisbon"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestTeamServiceGetNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)

	_, err := service.Get(context.Background(), "3f333df6-90a4-4fda-8dd3-9485d27cee36")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTeamServiceUpdateReplacesTagSet(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team := seedTeam(t, db, "Alpha", "Berlin")
	seedTag(t, db, "go")
	seedTag(t, db, "infra")
	seedTag(t, db, "db")

	updated, err := service.Update(ctx, team.ID, models.TeamUpdate{
		TagsNames: &[]string{"go", "infra"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "infra"}, tagNames(updated.Tags))

	// Replacing again swaps the full set, not just additions.
	updated, err = service.Update(ctx, team.ID, models.TeamUpdate{
		TagsNames: &[]string{"infra", "db"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"infra", "db"}, tagNames(updated.Tags))
}

func TestTeamServiceUpdateClearsSetsWithEmptyList(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team := seedTeam(t, db, "Alpha", "Berlin")
	seedUser(t, db, "alice", &team.ID)
	seedTag(t, db, "go")

	updated, err := service.Update(ctx, team.ID, models.TeamUpdate{
		UsersNames: &[]string{"alice"},
		TagsNames:  &[]string{"go"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Users, 1)
	require.Len(t, updated.Tags, 1)

	updated, err = service.Update(ctx, team.ID, models.TeamUpdate{
		UsersNames: &[]string{},
		TagsNames:  &[]string{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Users)
	assert.Empty(t, updated.Tags)

	// Cleared users survive without a team reference.
	user, err := db.UserRepo().FindByNames(ctx, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, user, 1)
	assert.Nil(t, user[0].TeamID)
}

func TestTeamServiceUpdateUnresolvedNameFailsWhole(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team := seedTeam(t, db, "Alpha", "Berlin")
	seedTag(t, db, "go")

	_, err := service.Update(ctx, team.ID, models.TeamUpdate{
		Name:      ptr("Renamed"),
		TagsNames: &[]string{"go", "ghost"},
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "ghost")

	// Nothing was applied, including the scalar rename.
	unchanged, err := service.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", unchanged.Name)
	assert.Empty(t, unchanged.Tags)
}

func TestTeamServiceUpdateScalarsOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team := seedTeam(t, db, "Alpha", "Berlin")
	seedUser(t, db, "alice", &team.ID)

	updated, err := service.Update(ctx, team.ID, models.TeamUpdate{
		Headquarters: ptr("Lisbon"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", updated.Headquarters)
	// Untouched relationship sets stay in place.
	assert.ElementsMatch(t, []string{"alice"}, userNames(updated.Users))
}

func TestTeamServiceDeleteCascadesToUsers(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team := seedTeam(t, db, "Alpha", "Berlin")
	alice := seedUser(t, db, "alice", &team.ID)
	bob := seedUser(t, db, "bob", &team.ID)
	tag := seedTag(t, db, "go")
	_, err := service.Update(ctx, team.ID, models.TeamUpdate{TagsNames: &[]string{"go"}})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, team.ID))

	_, err = service.Get(ctx, team.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = db.UserRepo().FindByID(ctx, alice.ID)
	assert.True(t, errs.IsNotFound(err))
	_, err = db.UserRepo().FindByID(ctx, bob.ID)
	assert.True(t, errs.IsNotFound(err))

	// Tags survive a team delete; only the join rows go away.
	survivor, err := db.TagRepo().FindByID(ctx, tag.ID, models.RelationTeams)
	require.NoError(t, err)
	assert.Empty(t, survivor.Teams)
}

func TestTeamServiceLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	team, err := service.Create(ctx, models.TeamCreate{Name: "Alpha", Headquarters: "Berlin"})
	require.NoError(t, err)

	_, err = service.Update(ctx, team.ID, models.TeamUpdate{Headquarters: ptr("Lisbon")})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, team.ID))

	logged := buf.String()
	assert.Contains(t, logged, "created team")
	assert.Contains(t, logged, "updated team")
	assert.Contains(t, logged, "deleted team")
	assert.Contains(t, logged, team.ID)
}

func TestTeamServiceGetManyPagination(t *testing.T) {
	db := newTestDB(t)
	service := NewTeamService(db)
	ctx := context.Background()

	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}
	for _, name := range names {
		seedTeam(t, db, name, "HQ")
	}

	page, err := service.GetMany(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = service.GetMany(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	count, err := service.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}
