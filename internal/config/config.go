package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process configuration, read from the environment (and an
// optional .env file) once at startup.
type Config struct {
	Env              string
	Port             string
	StrictValidation bool
	MigrationsDir    string
	Database         DatabaseConfig
	HTTP             HTTPConfig
}

// DatabaseConfig describes how to reach the relational store. URL wins over
// the discrete fields when set.
type DatabaseConfig struct {
	URL          string
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
}

type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("PORT", "3000")
	v.SetDefault("STRICT_VALIDATION", false)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("MYSQL_HOST", "127.0.0.1")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_USER", "root")
	v.SetDefault("MYSQL_PASSWORD", "rootpassword")
	v.SetDefault("MYSQL_DATABASE", "employee_db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)

	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)

	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	maxOpen := v.GetInt("DB_MAX_OPEN_CONNS")
	if maxOpen <= 0 {
		maxOpen = 10
	}

	return &Config{
		Env:              v.GetString("APP_ENV"),
		Port:             v.GetString("PORT"),
		StrictValidation: v.GetBool("STRICT_VALIDATION"),
		MigrationsDir:    v.GetString("MIGRATIONS_DIR"),
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("MYSQL_HOST"),
			Port:         v.GetString("MYSQL_PORT"),
			User:         v.GetString("MYSQL_USER"),
			Password:     v.GetString("MYSQL_PASSWORD"),
			Name:         v.GetString("MYSQL_DATABASE"),
			MaxOpenConns: maxOpen,
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
	}
}
