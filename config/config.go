// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configPath      = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers  = []string{"sqlite", "postgres"}
	validMediaTypes = []string{"s3", "none"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that. A missing config.toml is fine, defaults and environment
// variables are used instead.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	Defaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return Validate()
}

// Defaults binds environment variables and sets the default value of
// every key. Exposed so tests get the same baseline as the server.
func Defaults() {
	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("search.index_path", "search_index_path")
	v.BindEnv("search.max_results", "search_max_results")
	v.BindEnv("search.reindex_schedule", "search_reindex_schedule")

	v.BindEnv("pagination.max_limit", "pagination_max_limit")

	v.BindEnv("security.jwt_secret", "security_jwt_secret")
	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("media.type", "media_type")

	v.BindEnv("aws.access_key", "access_key_id")
	v.BindEnv("aws.secret_access_key", "secret_access_key")
	v.BindEnv("aws.bucket", "bucket")
	v.BindEnv("aws.region", "region")
	v.BindEnv("aws.endpoint", "aws_endpoint")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", "http://localhost:3000")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("search.index_path", "")
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.reindex_schedule", "@every 1h")

	v.SetDefault("pagination.max_limit", 50)

	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("media.type", "none")
	v.SetDefault("aws.region", "auto")
}

// Validate checks the currently loaded values
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if strings.TrimSpace(v.GetString("db.dsn")) == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetInt("search.max_results") <= 0 {
		return errors.New("search.max_results must be bigger than 0")
	}

	if s := v.GetString("search.reindex_schedule"); s != "" {
		if _, err := cron.ParseStandard(s); err != nil {
			return fmt.Errorf("invalid search.reindex_schedule, %w", err)
		}
	}

	if v.GetInt("pagination.max_limit") <= 0 {
		return errors.New("pagination.max_limit must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("security.jwt_secret") == "" {
		return errors.New("no JWT secret provided, set security.jwt_secret or SECURITY_JWT_SECRET")
	}

	mediaType := v.GetString("media.type")
	if !slices.Contains(validMediaTypes, mediaType) {
		return errors.New("invalid media type provided")
	}

	if mediaType == "s3" {
		if v.GetString("aws.access_key") == "" {
			return errors.New("access key can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	}

	return nil
}
