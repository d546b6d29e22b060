package testutil

import (
	"time"

	"task-manager/internal/auth"
	"task-manager/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Task{},
		&models.TaskTag{},
		&models.Comment{},
		&models.Note{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedUser inserts a user with a hashed password and returns it.
func SeedUser(db *gorm.DB, email, name, password string, role models.Role) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, Name: name, PasswordHash: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SeedTask inserts a task with sane defaults; assignee may be nil.
func SeedTask(db *gorm.DB, title string, assignee *uint) (*models.Task, error) {
	task := models.Task{
		Title:    title,
		DueDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UserID:   assignee,
		Priority: models.PriorityMedium,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
