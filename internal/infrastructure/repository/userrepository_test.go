package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"habita/internal/domain/user"
	"habita/internal/infrastructure/migration"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/logger"
)

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(migration.AllModels()...))
	return gormDB
}

// The goose scripts create a column named sid; auto-migrate must produce the
// same name or every SID lookup breaks on dev databases.
func TestAutoMigrate_SIDColumnName(t *testing.T) {
	gormDB := newMigratedDB(t)
	migrator := gormDB.Migrator()

	assert.True(t, migrator.HasColumn(&models.UserModel{}, "sid"))
	assert.True(t, migrator.HasColumn(&models.EntitlementModel{}, "sid"))
	assert.True(t, migrator.HasColumn(&models.ListingModel{}, "sid"))
}

func TestUserRepository_GetBySID(t *testing.T) {
	gormDB := newMigratedDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())

	created, err := user.NewUser("sid@example.com", "Sid", "", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), created))

	found, err := repo.GetBySID(context.Background(), created.SID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID(), found.ID())
	assert.Equal(t, created.SID(), found.SID())
}
