package services

import (
	"context"

	"github.com/rosterhq/team-registry-backend/database"
	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type TagService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewTagService(db database.Database) *TagService {
	return &TagService{
		db:     db,
		logger: log.With().Str("service", "tag").Logger(),
	}
}

func (s *TagService) Create(ctx context.Context, input models.TagCreate) (*models.Tag, error) {
	tag := &models.Tag{Name: input.Name}
	if err := s.db.TagRepo().Create(ctx, tag); err != nil {
		return nil, err
	}
	s.logger.Info().Str("tagID", tag.ID).Str("name", tag.Name).Msg("created tag")
	return tag, nil
}

// Get returns the tag with its team collection materialized.
func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	return s.db.TagRepo().FindByID(ctx, id, models.RelationTeams)
}

func (s *TagService) GetMany(ctx context.Context, offset, limit int) ([]models.Tag, error) {
	return s.db.TagRepo().FindPage(ctx, offset, limit, models.RelationTeams)
}

// Update applies a partial update. TeamsNames replaces the tag's full team
// set with the same all-or-nothing resolution contract as team updates.
func (s *TagService) Update(ctx context.Context, id string, update models.TagUpdate) (*models.Tag, error) {
	var updated *models.Tag
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		tag, err := tx.TagRepo().FindByID(ctx, id, models.RelationTeams)
		if err != nil {
			return err
		}

		var teams []models.Team
		if update.TeamsNames != nil {
			if teams, err = resolveTeams(ctx, tx, *update.TeamsNames); err != nil {
				return err
			}
		}

		if update.Name != nil {
			tag.Name = *update.Name
		}
		if err := tx.TagRepo().Save(ctx, tag); err != nil {
			return err
		}

		if update.TeamsNames != nil {
			if err := tx.TagRepo().ReplaceTeams(ctx, tag, teams); err != nil {
				return err
			}
		}

		updated, err = tx.TagRepo().FindByID(ctx, id, models.RelationTeams)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tagID", id).Msg("updated tag")
	return updated, nil
}

// Delete removes the tag and its join rows; teams are left alone.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.db.TagRepo().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("tagID", id).Msg("deleted tag")
	return nil
}

func (s *TagService) Count(ctx context.Context, column string) (int64, error) {
	return s.db.TagRepo().Count(ctx, column)
}

func resolveTeams(ctx context.Context, tx database.Database, names []string) ([]models.Team, error) {
	requested := uniqueNames(names)
	if len(requested) == 0 {
		return nil, nil
	}
	teams, err := tx.TeamRepo().FindByNames(ctx, requested)
	if err != nil {
		return nil, err
	}
	if len(teams) != len(requested) {
		found := make([]string, 0, len(teams))
		for _, team := range teams {
			found = append(found, team.Name)
		}
		return nil, errs.NewNamesNotFound("Team", missingNames(requested, found))
	}
	return teams, nil
}
