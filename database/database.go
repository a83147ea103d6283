package database

import (
	"context"

	"github.com/rosterhq/team-registry-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db        *gorm.DB
	teamRepo  *TeamRepo
	userRepo  *UserRepo
	tagRepo   *TagRepo
	taskRepo  *TaskRepo
	emailRepo *EmailRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:        db,
		teamRepo:  NewTeamRepo(db),
		userRepo:  NewUserRepo(db),
		tagRepo:   NewTagRepo(db),
		taskRepo:  NewTaskRepo(db),
		emailRepo: NewEmailRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) TeamRepo() *TeamRepo {
	return d.teamRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) TaskRepo() *TaskRepo {
	return d.taskRepo
}

func (d Database) EmailRepo() *EmailRepo {
	return d.emailRepo
}

// Transaction runs fn against a Database bound to one transaction; any error
// returned by fn rolls the whole transaction back.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping verifies the underlying connection pool is reachable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate registers the tag/team join table and creates the schema for
// every entity. The Team->User foreign key carries ON DELETE CASCADE, so
// deleting a team removes its users at the storage level.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Team{}, "Tags", &models.TagTeamLink{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Teams", &models.TagTeamLink{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Tag{},
		&models.Task{},
		&models.Email{},
	)
}
