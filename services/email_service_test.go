package services

import (
	"context"
	"testing"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailServiceCreateNormalizesAddresses(t *testing.T) {
	db := newTestDB(t)
	service := NewEmailService(db)
	ctx := context.Background()

	created, err := service.Create(ctx, models.EmailCreate{
		Type:    "notification",
		Subject: "hello",
		To:      ptr("Alice@Example.com; Bob@Example.com"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.To)
	assert.Equal(t, "alice@example.com,bob@example.com", *created.To)
	assert.Nil(t, created.SentAt)

	_, err = service.Create(ctx, models.EmailCreate{
		Type:    "notification",
		Subject: "broken",
		To:      ptr("not-an-address"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
}

func TestEmailServiceSendStampsSentAt(t *testing.T) {
	db := newTestDB(t)
	service := NewEmailService(db)
	ctx := context.Background()

	created, err := service.Create(ctx, models.EmailCreate{
		Type:    "notification",
		Subject: "hello",
		To:      ptr("alice@example.com"),
	})
	require.NoError(t, err)

	sent, err := service.Send(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
}

func TestEmailServiceSendForUserUpdate(t *testing.T) {
	db := newTestDB(t)
	service := NewEmailService(db)
	ctx := context.Background()

	alpha := seedTeam(t, db, "Alpha", "Berlin")
	alice := seedUser(t, db, "alice", &alpha.ID)
	alice.Team = alpha
	before := models.NewUserReadComposite(*alice)

	update := models.UserUpdate{
		FirstName: ptr("Alicia"),
		TeamName:  ptr("Bravo"),
	}

	email, err := service.SendForUserUpdate(ctx, alice, update, before)
	require.NoError(t, err)

	assert.Equal(t, "notification", email.Type)
	assert.Equal(t, "User alice properties change notification", email.Subject)
	require.NotNil(t, email.To)
	assert.Equal(t, alice.Email, *email.To)
	require.NotNil(t, email.SentAt)

	require.NotNil(t, email.Body)
	assert.Contains(t, *email.Body, "first_name=Alicia")
	assert.Contains(t, *email.Body, "team_name=Bravo")
	assert.Contains(t, *email.Body, "team=Alpha")
}
