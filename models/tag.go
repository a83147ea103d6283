package models

// Tag represents a label attached to any number of teams
type Tag struct {
	Base
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`

	Teams []Team `json:"teams,omitempty" gorm:"many2many:tag_team_links"`
}

func (Tag) EntityName() string {
	return "Tag"
}

type TagCreate struct {
	Name string `json:"name"`
}

// TagUpdate is a partial update; TeamsNames, when present, replaces the tag's
// full team set with the teams resolved from those names.
type TagUpdate struct {
	Name       *string   `json:"name,omitempty"`
	TeamsNames *[]string `json:"teams_names,omitempty"`
}

// TagRead is the flat read-only view of a tag
type TagRead struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagReadComposite nests the tag's eagerly loaded teams
type TagReadComposite struct {
	TagRead
	Teams []TeamRead `json:"teams"`
}

func NewTagRead(tag Tag) TagRead {
	return TagRead{ID: tag.ID, Name: tag.Name}
}

func NewTagReadComposite(tag Tag) TagReadComposite {
	teams := make([]TeamRead, 0, len(tag.Teams))
	for _, team := range tag.Teams {
		teams = append(teams, NewTeamRead(team))
	}
	return TagReadComposite{
		TagRead: NewTagRead(tag),
		Teams:   teams,
	}
}
