package database

import (
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	*Repo[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{NewRepo[models.User](db)}
}
