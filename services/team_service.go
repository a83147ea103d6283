package services

import (
	"context"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TeamService owns the transaction boundary for every team operation.
type TeamService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewTeamService(db database.Database) *TeamService {
	return &TeamService{
		db:     db,
		logger: log.With().Str("service", "team").Logger(),
	}
}

// Create persists a new team. Name uniqueness is enforced by the storage
// layer; a duplicate surfaces as a conflict.
func (s *TeamService) Create(ctx context.Context, input models.TeamCreate) (*models.Team, error) {
	team := &models.Team{
		Name:         input.Name,
		Headquarters: input.Headquarters,
	}
	if err := s.db.TeamRepo().Create(ctx, team); err != nil {
		return nil, err
	}
	s.logger.Info().Str("teamID", team.ID).Str("name", team.Name).Msg("created team")
	return team, nil
}

// Get returns the team with its user and tag collections materialized.
func (s *TeamService) Get(ctx context.Context, id string) (*models.Team, error) {
	return s.db.TeamRepo().FindByID(ctx, id, models.RelationUsers, models.RelationTags)
}

// GetMany returns a page of teams, each with users and tags materialized.
func (s *TeamService) GetMany(ctx context.Context, offset, limit int) ([]models.Team, error) {
	return s.db.TeamRepo().FindPage(ctx, offset, limit, models.RelationUsers, models.RelationTags)
}

// Update applies a partial update. UsersNames and TagsNames replace the
// team's full relationship sets: every referenced name is resolved before any
// mutation, so one unresolved name fails the whole operation and leaves the
// team untouched.
func (s *TeamService) Update(ctx context.Context, id string, update models.TeamUpdate) (*models.Team, error) {
	var updated *models.Team
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		team, err := tx.TeamRepo().FindByID(ctx, id, models.RelationUsers, models.RelationTags)
		if err != nil {
			return err
		}

		var users []models.User
		if update.UsersNames != nil {
			if users, err = resolveUsers(ctx, tx, *update.UsersNames); err != nil {
				return err
			}
		}
		var tags []models.Tag
		if update.TagsNames != nil {
			if tags, err = resolveTags(ctx, tx, *update.TagsNames); err != nil {
				return err
			}
		}

		if update.Name != nil {
			team.Name = *update.Name
		}
		if update.Headquarters != nil {
			team.Headquarters = *update.Headquarters
		}
		if err := tx.TeamRepo().Save(ctx, team); err != nil {
			return err
		}

		if update.UsersNames != nil {
			if err := tx.TeamRepo().ReplaceUsers(ctx, team, users); err != nil {
				return err
			}
		}
		if update.TagsNames != nil {
			if err := tx.TeamRepo().ReplaceTags(ctx, team, tags); err != nil {
				return err
			}
		}

		updated, err = tx.TeamRepo().FindByID(ctx, id, models.RelationUsers, models.RelationTags)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("teamID", id).Msg("updated team")
	return updated, nil
}

// Delete removes the team. The storage layer cascades the delete to the
// team's users and drops the tag join rows; tags themselves survive.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.db.TeamRepo().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("teamID", id).Msg("deleted team")
	return nil
}

// Count returns the number of teams, optionally restricted to rows where
// column is non-null.
func (s *TeamService) Count(ctx context.Context, column string) (int64, error) {
	return s.db.TeamRepo().Count(ctx, column)
}

func resolveUsers(ctx context.Context, tx database.Database, names []string) ([]models.User, error) {
	requested := uniqueNames(names)
	if len(requested) == 0 {
		return nil, nil
	}
	users, err := tx.UserRepo().FindByNames(ctx, requested)
	if err != nil {
		return nil, err
	}
	if len(users) != len(requested) {
		found := make([]string, 0, len(users))
		for _, user := range users {
			found = append(found, user.Name)
		}
		return nil, errs.NewNamesNotFound("User", missingNames(requested, found))
	}
	return users, nil
}

func resolveTags(ctx context.Context, tx database.Database, names []string) ([]models.Tag, error) {
	requested := uniqueNames(names)
	if len(requested) == 0 {
		return nil, nil
	}
	tags, err := tx.TagRepo().FindByNames(ctx, requested)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(requested) {
		found := make([]string, 0, len(tags))
		for _, tag := range tags {
			found = append(found, tag.Name)
		}
		return nil, errs.NewNamesNotFound("Tag", missingNames(requested, found))
	}
	return tags, nil
}
