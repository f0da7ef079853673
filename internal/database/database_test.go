package database_test

import (
	"context"
	"testing"

	"github.com/pageza/chefcourse/backend/config"
	"github.com/pageza/chefcourse/backend/internal/database"
	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: t.TempDir() + "/test.db",
	}
	log := testhelpers.DiscardLogger()

	db, err := database.Open(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, log))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: "oracle"}, testhelpers.DiscardLogger())
	assert.Error(t, err)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestUser(t, db, "dup")

	err := db.Create(&models.User{Username: "dup", Email: "other@example.com", PasswordHash: "x"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	log := testhelpers.DiscardLogger()

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// Already applied by SetupPostgres.
	applied, err := database.MigrateUp(ctx, sqlDB, log)
	require.NoError(t, err)
	assert.Empty(t, applied)

	user := testhelpers.CreateTestUser(t, db, "pguser")
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Borscht")

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, stored.Ingredients)

	err = db.Create(&models.User{Username: "pguser", Email: "x@example.com", PasswordHash: "x"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	name, err := database.Rollback(ctx, sqlDB, log)
	require.NoError(t, err)
	assert.Equal(t, "002_password_reset_token.sql", name)
	assert.True(t, db.Migrator().HasTable("users"))
	assert.False(t, db.Migrator().HasColumn(&models.User{}, "password_version"))

	name, err = database.Rollback(ctx, sqlDB, log)
	require.NoError(t, err)
	assert.Equal(t, "001_init.sql", name)
	assert.False(t, db.Migrator().HasTable("users"))

	_, err = database.Rollback(ctx, sqlDB, log)
	assert.ErrorIs(t, err, database.ErrNoMigrations)
}
