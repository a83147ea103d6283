package models

// TagTeamLink is the join row behind Team.Tags and Tag.Teams. Rows are
// created and destroyed only as a side effect of reconciling either side's
// relationship set; there is no independent lifecycle.
type TagTeamLink struct {
	TagID  string `json:"tag_id" db:"tag_id" gorm:"type:uuid;primaryKey"`
	TeamID string `json:"team_id" db:"team_id" gorm:"type:uuid;primaryKey"`
}
