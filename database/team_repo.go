package database

import (
	"context"
	"errors"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type TeamRepo struct {
	*Repo[models.Team]
}

func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{NewRepo[models.Team](db)}
}

// FindByName resolves a team by its exact unique name.
func (r *TeamRepo) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundByName("Team", name)
	}
	if err != nil {
		return nil, errs.FromDatabase("find", "Team", err)
	}
	return &team, nil
}

// ReplaceUsers swaps the team's full user set. Removed users keep existing
// but lose their team reference.
func (r *TeamRepo) ReplaceUsers(ctx context.Context, team *models.Team, users []models.User) error {
	association := r.db.WithContext(ctx).Model(team).Association("Users")
	var err error
	if len(users) == 0 {
		err = association.Clear()
	} else {
		err = association.Replace(&users)
	}
	if err != nil {
		return errs.FromDatabase("replace users of", "Team", err)
	}
	return nil
}

// ReplaceTags swaps the team's full tag set by rewriting the join rows.
func (r *TeamRepo) ReplaceTags(ctx context.Context, team *models.Team, tags []models.Tag) error {
	association := r.db.WithContext(ctx).Model(team).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = association.Clear()
	} else {
		err = association.Replace(&tags)
	}
	if err != nil {
		return errs.FromDatabase("replace tags of", "Team", err)
	}
	return nil
}
