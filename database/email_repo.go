package database

import (
	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type EmailRepo struct {
	*Repo[models.Email]
}

func NewEmailRepo(db *gorm.DB) *EmailRepo {
	return &EmailRepo{NewRepo[models.Email](db)}
}
