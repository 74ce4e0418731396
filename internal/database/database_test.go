package database

import (
	"testing"

	"github.com/Jepersonsam/my-finance-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppliesPoolConfig(t *testing.T) {
	db, err := Init(config.DatabaseConfig{
		Path:         "file::memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestInitDefaultsPoolSizes(t *testing.T) {
	db, err := Init(config.DatabaseConfig{Path: "file::memory:"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestInitEnablesForeignKeys(t *testing.T) {
	db, err := Init(config.DatabaseConfig{
		Path:         "file::memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
