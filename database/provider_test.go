package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-arch1tect/taskbox/config"
)

type widget struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
}

func testDatabaseConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          ":memory:",
			AutoMigrate:  true,
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}
}

func TestProvideDatabase(t *testing.T) {
	t.Run("sqlite with auto-migration", func(t *testing.T) {
		cfg := testDatabaseConfig()

		db, err := ProvideDatabase(cfg, WithModels(&widget{}), nil)

		require.NoError(t, err)
		assert.True(t, db.Migrator().HasTable(&widget{}))
		require.NoError(t, db.Create(&widget{Name: "gear"}).Error)
	})

	t.Run("migration can be disabled", func(t *testing.T) {
		cfg := testDatabaseConfig()
		cfg.Database.AutoMigrate = false

		db, err := ProvideDatabase(cfg, WithModels(&widget{}), nil)

		require.NoError(t, err)
		assert.False(t, db.Migrator().HasTable(&widget{}))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		cfg := testDatabaseConfig()
		cfg.Database.Driver = "oracle"

		_, err := ProvideDatabase(cfg, nil, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("connection pool limits applied", func(t *testing.T) {
		cfg := testDatabaseConfig()
		cfg.Database.MaxOpenConns = 7

		db, err := ProvideDatabase(cfg, nil, nil)

		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
	})
}
