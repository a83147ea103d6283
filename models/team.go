package models

// Team represents a team with its headquarters and related users and tags
type Team struct {
	Base
	Name         string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Headquarters string `json:"headquarters" db:"headquarters" gorm:"type:text;not null"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE"`
	Tags  []Tag  `json:"tags,omitempty" gorm:"many2many:tag_team_links"`
}

func (Team) EntityName() string {
	return "Team"
}

// TeamCreate is the validated input for creating a team. Name uniqueness is
// enforced by the storage layer's unique constraint.
type TeamCreate struct {
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

// TeamUpdate is a partial update; nil fields are left untouched. UsersNames
// and TagsNames, when present, replace the team's full user and tag sets: an
// explicit empty list clears the set.
type TeamUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Headquarters *string   `json:"headquarters,omitempty"`
	UsersNames   *[]string `json:"users_names,omitempty"`
	TagsNames    *[]string `json:"tags_names,omitempty"`
}

// TeamRead is the flat read-only view of a team
type TeamRead struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

// TeamReadComposite nests the team's eagerly loaded users and tags
type TeamReadComposite struct {
	TeamRead
	Users []UserRead `json:"users"`
	Tags  []TagRead  `json:"tags"`
}

func NewTeamRead(team Team) TeamRead {
	return TeamRead{
		ID:           team.ID,
		Name:         team.Name,
		Headquarters: team.Headquarters,
	}
}

// NewTeamReadComposite assembles the composite projection from an entity whose
// Users and Tags collections were eagerly loaded.
func NewTeamReadComposite(team Team) TeamReadComposite {
	users := make([]UserRead, 0, len(team.Users))
	for _, user := range team.Users {
		users = append(users, NewUserRead(user))
	}
	tags := make([]TagRead, 0, len(team.Tags))
	for _, tag := range team.Tags {
		tags = append(tags, NewTagRead(tag))
	}
	return TeamReadComposite{
		TeamRead: NewTeamRead(team),
		Users:    users,
		Tags:     tags,
	}
}
