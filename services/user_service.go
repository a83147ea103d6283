package services

import (
	"context"
	"strings"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type UserService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewUserService(db database.Database) *UserService {
	return &UserService{
		db:     db,
		logger: log.With().Str("service", "user").Logger(),
	}
}

// Create persists a new user with the team reference unset.
func (s *UserService) Create(ctx context.Context, input models.UserCreate) (*models.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	user := &models.User{
		Name:      input.Name,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	if err := s.db.UserRepo().Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("userID", user.ID).Str("name", user.Name).Msg("created user")
	return user, nil
}

// Get returns the user with the team reference materialized (nil when the
// user is unaffiliated).
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.db.UserRepo().FindByID(ctx, id, models.RelationTeam)
}

func (s *UserService) GetMany(ctx context.Context, offset, limit int) ([]models.User, error) {
	return s.db.UserRepo().FindPage(ctx, offset, limit, models.RelationTeam)
}

// Update applies a partial update. A non-empty TeamName is resolved to a team
// by exact name; an unresolved name fails the operation and the prior team
// reference stays in place. The resolved team is attached to the returned
// user so read projections need no further fetch.
func (s *UserService) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	var updated *models.User
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		user, err := tx.UserRepo().FindByID(ctx, id, models.RelationTeam)
		if err != nil {
			return err
		}

		var team *models.Team
		if update.TeamName != nil && *update.TeamName != "" {
			if team, err = tx.TeamRepo().FindByName(ctx, *update.TeamName); err != nil {
				return err
			}
			user.TeamID = &team.ID
		}

		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.FirstName != nil {
			user.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			user.LastName = *update.LastName
		}
		if update.Email != nil {
			user.Email = strings.ToLower(*update.Email)
		}
		if err := tx.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		if team != nil {
			user.Team = team
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("userID", id).Msg("updated user")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.db.UserRepo().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("userID", id).Msg("deleted user")
	return nil
}

// Count returns the number of users; Count with "team_id" yields only the
// affiliated ones.
func (s *UserService) Count(ctx context.Context, column string) (int64, error) {
	return s.db.UserRepo().Count(ctx, column)
}
