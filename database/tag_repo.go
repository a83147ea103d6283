package database

import (
	"context"

	"github.com/rosterhq/team-registry-backend/errs"
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	*Repo[models.Tag]
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{NewRepo[models.Tag](db)}
}

// ReplaceTeams swaps the tag's full team set by rewriting the join rows.
func (r *TagRepo) ReplaceTeams(ctx context.Context, tag *models.Tag, teams []models.Team) error {
	association := r.db.WithContext(ctx).Model(tag).Association("Teams")
	var err error
	if len(teams) == 0 {
		err = association.Clear()
	} else {
		err = association.Replace(&teams)
	}
	if err != nil {
		return errs.FromDatabase("replace teams of", "Tag", err)
	}
	return nil
}
