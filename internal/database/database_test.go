package database

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredMigrationsAreOrderedAndPaired(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)

	prev := 0
	for _, m := range ms {
		assert.Greater(t, m.Version, prev, "versions must be strictly increasing")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
		prev = m.Version
	}
}

func TestGetMigrationByVersion(t *testing.T) {
	m := GetMigrationByVersion(1)
	require.NotNil(t, m)
	assert.Equal(t, "create_core_tables", m.Name)
	assert.Equal(t, "000001_create_core_tables", m.String())

	assert.Nil(t, GetMigrationByVersion(99999))
}

func TestSchemaPolicy(t *testing.T) {
	runSQL, runAuto, err := schemaPolicy(&config.Config{Env: "development", DBSchemaMode: "hybrid"})
	require.NoError(t, err)
	assert.True(t, runSQL)
	assert.True(t, runAuto)

	runSQL, runAuto, err = schemaPolicy(&config.Config{Env: "production", DBSchemaMode: "hybrid"})
	require.NoError(t, err)
	assert.True(t, runSQL)
	assert.False(t, runAuto, "AutoMigrate must not run in production hybrid mode")

	_, _, err = schemaPolicy(&config.Config{Env: "production", DBSchemaMode: "auto"})
	assert.Error(t, err, "auto mode in production requires explicit opt-in")

	runSQL, runAuto, err = schemaPolicy(&config.Config{Env: "production", DBSchemaMode: "sql"})
	require.NoError(t, err)
	assert.True(t, runSQL)
	assert.False(t, runAuto)

	_, _, err = schemaPolicy(&config.Config{Env: "development", DBSchemaMode: "bogus"})
	assert.Error(t, err)
}

func TestPersistentModelsCoverCoreEntities(t *testing.T) {
	var haveFollow, havePost bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.Follow:
			haveFollow = true
		case *models.Post:
			havePost = true
		}
	}
	require.True(t, haveFollow)
	require.True(t, havePost)
}
