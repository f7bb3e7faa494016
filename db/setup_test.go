package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/songbook-dev/songbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDatabase_UnknownDriver(t *testing.T) {
	_, err := ConnectDatabase("mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenInMemory_MigratesTables(t *testing.T) {
	gdb, err := OpenInMemory(uuid.NewString())
	require.NoError(t, err)

	migrator := gdb.Migrator()
	for _, model := range []interface{}{&models.User{}, &models.Song{}, &models.Tab{}, &models.Video{}} {
		assert.True(t, migrator.HasTable(model), "%T table missing", model)
	}

	assert.True(t, migrator.HasIndex(&models.User{}, "ExternalLoginID"))
}

func TestOpenInMemory_GeneratesIDs(t *testing.T) {
	gdb, err := OpenInMemory(uuid.NewString())
	require.NoError(t, err)

	user := models.User{ExternalLoginID: "g-1"}
	require.NoError(t, gdb.Create(&user).Error)

	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)
}
