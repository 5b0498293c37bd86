package connection

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"go-empedge/internal/config"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open builds the process-wide connection pool. It never touches the network:
// reachability is reported separately by CheckConnectivity, and every later
// query fails on its own if the store is down.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.L()
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 NewGormLogger(logger.Named("gorm")),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s pool: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// Pool config. Waiters queue without limit once MaxOpenConns is reached.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Dialector picks the gorm dialect from DATABASE_URL, or from the driver name
// and discrete connection fields when no URL is configured.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	if cfg.URL != "" {
		return dialectorFromURL(cfg.URL)
	}

	switch strings.ToLower(cfg.Driver) {
	case "", DriverMySQL:
		return newMySQL(MySQLConfig(cfg)), nil
	case DriverPostgres, "postgresql":
		dsn := fmt.Sprintf("postgres://%s@%s/%s?sslmode=disable",
			url.UserPassword(cfg.User, cfg.Password).String(),
			net.JoinHostPort(cfg.Host, cfg.Port),
			cfg.Name,
		)
		return postgres.Open(dsn), nil
	case DriverSQLite, "sqlite3":
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func dialectorFromURL(raw string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(raw, "sqlite://")), nil
	case strings.HasPrefix(raw, "file:"):
		return sqlite.Open(raw), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	switch u.Scheme {
	case "mysql":
		mc, err := mysqlConfigFromURL(u)
		if err != nil {
			return nil, err
		}
		return newMySQL(mc), nil
	case "postgres", "postgresql":
		return postgres.Open(raw), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
}

// MySQLConfig maps the discrete MYSQL_* settings onto a driver config.
func MySQLConfig(cfg config.DatabaseConfig) *gomysql.Config {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	return withDefaults(mc)
}

func mysqlConfigFromURL(u *url.URL) (*gomysql.Config, error) {
	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("DATABASE_URL has no host")
	}
	mc.Addr = net.JoinHostPort(u.Hostname(), port)
	mc.DBName = strings.TrimPrefix(u.Path, "/")

	if q := u.Query(); len(q) > 0 {
		mc.Params = make(map[string]string, len(q))
		for k := range q {
			mc.Params[k] = q.Get(k)
		}
	}
	return withDefaults(mc), nil
}

// withDefaults makes UPDATE report matched rather than changed rows, so an
// update that writes identical values still counts as found.
func withDefaults(mc *gomysql.Config) *gomysql.Config {
	mc.ClientFoundRows = true
	mc.ParseTime = true
	if mc.Timeout == 0 {
		mc.Timeout = 5 * time.Second
	}
	return mc
}

func newMySQL(mc *gomysql.Config) gorm.Dialector {
	return mysql.New(mysql.Config{
		DSNConfig:                 mc,
		DSN:                       mc.FormatDSN(),
		SkipInitializeWithVersion: true,
	})
}

// CheckConnectivity acquires one connection from the pool and releases it.
func CheckConnectivity(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		return err
	}

	conn, err := sqlDB.Conn(ctx)
	if err == nil {
		err = conn.PingContext(ctx)
		_ = conn.Close()
	}
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		return err
	}

	logger.Info("database connected successfully", zap.String("dialect", db.Dialector.Name()))
	return nil
}

// Close releases every pooled connection. It is the pool's shutdown hook.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
