package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EmailService persists outbound emails and stamps them when sent. Actual
// delivery is a collaborator concern; Send only records the handoff.
type EmailService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewEmailService(db database.Database) *EmailService {
	return &EmailService{
		db:     db,
		logger: log.With().Str("service", "email").Logger(),
	}
}

func (s *EmailService) Create(ctx context.Context, input models.EmailCreate) (*models.Email, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := &models.Email{
		Type:       input.Type,
		Subject:    input.Subject,
		Body:       input.Body,
		Sender:     input.Sender,
		To:         input.To,
		Cc:         input.Cc,
		Bcc:        input.Bcc,
		TrackingID: input.TrackingID,
	}
	if err := s.db.EmailRepo().Create(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

func (s *EmailService) Get(ctx context.Context, id string) (*models.Email, error) {
	return s.db.EmailRepo().FindByID(ctx, id)
}

func (s *EmailService) Update(ctx context.Context, id string, update models.EmailUpdate) (*models.Email, error) {
	email, err := s.db.EmailRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Type != nil {
		email.Type = *update.Type
	}
	if update.Subject != nil {
		email.Subject = *update.Subject
	}
	if update.Body != nil {
		email.Body = update.Body
	}
	if update.TrackingID != nil {
		email.TrackingID = update.TrackingID
	}
	if update.SentAt != nil {
		email.SentAt = update.SentAt
	}
	if err := s.db.EmailRepo().Save(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

// Send hands the email to the delivery collaborator and stamps SentAt.
func (s *EmailService) Send(ctx context.Context, id string) (*models.Email, error) {
	now := time.Now().UTC()
	email, err := s.Update(ctx, id, models.EmailUpdate{SentAt: &now})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("emailID", email.ID).
		Str("subject", email.Subject).
		Msg("sent email")
	return email, nil
}

// SendForUserUpdate records and sends a notification email describing which
// user properties changed, including the pre-update values.
func (s *EmailService) SendForUserUpdate(
	ctx context.Context,
	user *models.User,
	update models.UserUpdate,
	before models.UserReadComposite,
) (*models.Email, error) {
	body := fmt.Sprintf(
		"User %s got following properties changed:\n    %s\n\nBefore the change, it was:\n    %s",
		user.Name,
		describeUserUpdate(update),
		describeUser(before),
	)
	email := &models.Email{
		Type:    "notification",
		Subject: fmt.Sprintf("User %s properties change notification", user.Name),
		Body:    &body,
		To:      &user.Email,
	}
	if err := s.db.EmailRepo().Create(ctx, email); err != nil {
		return nil, err
	}
	return s.Send(ctx, email.ID)
}

func describeUserUpdate(update models.UserUpdate) string {
	var parts []string
	appendPart := func(field string, value *string) {
		if value != nil {
			parts = append(parts, fmt.Sprintf("%s=%s", field, *value))
		}
	}
	appendPart("name", update.Name)
	appendPart("first_name", update.FirstName)
	appendPart("last_name", update.LastName)
	appendPart("email", update.Email)
	appendPart("team_name", update.TeamName)
	return strings.Join(parts, ", ")
}

func describeUser(user models.UserReadComposite) string {
	team := "none"
	if user.Team != nil {
		team = user.Team.Name
	}
	return fmt.Sprintf(
		"name=%s, first_name=%s, last_name=%s, email=%s, team=%s",
		user.Name, user.FirstName, user.LastName, user.Email, team,
	)
}
