package repository

import (
	"testing"

	"herald/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.NotificationPreference{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, u *models.User) *models.User {
	t.Helper()
	if u.Role == "" {
		u.Role = "USER"
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
