package models

import (
	"net/mail"
	"strings"

	"github.com/rosterhq/team-registry-backend/errs"
)

// User represents a member of at most one team
type User struct {
	Base
	Name      string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	FirstName string `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName  string `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	Email     string `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`

	// TeamID is nullable: a user may be unaffiliated.
	TeamID *string `json:"team_id,omitempty" db:"team_id" gorm:"type:uuid;index"`
	Team   *Team   `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
}

func (User) EntityName() string {
	return "User"
}

// UserCreate is the validated input for creating a user; the team reference
// starts out unset.
type UserCreate struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (c *UserCreate) Validate() error {
	if c.Name == "" {
		return errs.NewBadRequest("name is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errs.NewBadRequest("invalid email address")
	}
	c.Email = strings.ToLower(c.Email)
	return nil
}

// UserUpdate is a partial update; nil fields are left untouched. TeamName,
// when present and non-empty, reassigns the user to the team with that exact
// name.
type UserUpdate struct {
	Name      *string `json:"name,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	TeamName  *string `json:"team_name,omitempty"`
}

// UserRead is the flat read-only view of a user
type UserRead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UserReadComposite nests the user's eagerly loaded team, if any. The nested
// shape is the flat TeamRead to avoid a circular projection.
type UserReadComposite struct {
	UserRead
	Team *TeamRead `json:"team"`
}

func NewUserRead(user User) UserRead {
	return UserRead{
		ID:        user.ID,
		Name:      user.Name,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func NewUserReadComposite(user User) UserReadComposite {
	composite := UserReadComposite{UserRead: NewUserRead(user)}
	if user.Team != nil {
		team := NewTeamRead(*user.Team)
		composite.Team = &team
	}
	return composite
}
