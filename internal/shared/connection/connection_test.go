package connection_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go-empedge/internal/config"
	"go-empedge/internal/shared/connection"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func defaultDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       "mysql",
		Host:         "127.0.0.1",
		Port:         "3306",
		User:         "root",
		Password:     "rootpassword",
		Name:         "employee_db",
		MaxOpenConns: 10,
	}
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(c *config.DatabaseConfig)
		dialect string
		wantErr bool
	}{
		{name: "discrete mysql fields", cfg: func(c *config.DatabaseConfig) {}, dialect: "mysql"},
		{name: "mysql url", cfg: func(c *config.DatabaseConfig) { c.URL = "mysql://app:secret@db:3307/staff" }, dialect: "mysql"},
		{name: "postgres url", cfg: func(c *config.DatabaseConfig) { c.URL = "postgres://app:secret@db:5432/staff" }, dialect: "postgres"},
		{name: "postgresql url", cfg: func(c *config.DatabaseConfig) { c.URL = "postgresql://app@db/staff" }, dialect: "postgres"},
		{name: "sqlite url", cfg: func(c *config.DatabaseConfig) { c.URL = "sqlite://employees.db" }, dialect: "sqlite"},
		{name: "file url", cfg: func(c *config.DatabaseConfig) { c.URL = "file::memory:?cache=shared" }, dialect: "sqlite"},
		{name: "postgres driver", cfg: func(c *config.DatabaseConfig) { c.Driver = "postgres" }, dialect: "postgres"},
		{name: "sqlite driver", cfg: func(c *config.DatabaseConfig) { c.Driver = "sqlite"; c.Name = "x.db" }, dialect: "sqlite"},
		{name: "unknown driver", cfg: func(c *config.DatabaseConfig) { c.Driver = "oracle" }, wantErr: true},
		{name: "unknown scheme", cfg: func(c *config.DatabaseConfig) { c.URL = "redis://localhost:6379" }, wantErr: true},
		{name: "mysql url without host", cfg: func(c *config.DatabaseConfig) { c.URL = "mysql:///staff" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultDatabaseConfig()
			tt.cfg(&cfg)

			d, err := connection.Dialector(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, d.Name())
		})
	}
}

func TestMySQLConfig(t *testing.T) {
	mc := connection.MySQLConfig(defaultDatabaseConfig())

	parsed, err := gomysql.ParseDSN(mc.FormatDSN())
	require.NoError(t, err)

	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "rootpassword", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "127.0.0.1:3306", parsed.Addr)
	assert.Equal(t, "employee_db", parsed.DBName)
	assert.True(t, parsed.ClientFoundRows)
	assert.True(t, parsed.ParseTime)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		URL:          "sqlite://" + filepath.Join(t.TempDir(), "employees.db"),
		MaxOpenConns: 3,
	}

	db, err := connection.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = connection.Close(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)

	assert.NoError(t, connection.CheckConnectivity(context.Background(), db, zap.NewNop()))
}

func TestOpen_UnreachableStoreIsNotFatal(t *testing.T) {
	cfg := defaultDatabaseConfig()
	cfg.Port = "1"

	db, err := connection.Open(cfg, zap.NewNop())
	require.NoError(t, err, "opening the pool must not dial")
	t.Cleanup(func() { _ = connection.Close(db) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Error(t, connection.CheckConnectivity(ctx, db, zap.NewNop()))
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, connection.Close(nil))
}
