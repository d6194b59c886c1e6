// Package db opens the catalog store
package db

import (
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/pkg/util"
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database for the given driver ("sqlite" or "postgres")
// and migrates every table the catalog reads or writes.
func New(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.IsRunningInDocker() {
			if _, err := os.Stat(dsn); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to %s", dsn)
			}
		}

		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}

		dialector = sqlite.Open(dsn + sep + "_busy_timeout=5000&_journal_mode=WAL")
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle, %w", err)
		}

		// SQLite allows one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Subscription{},
		model.Video{},
		model.VideoLike{},
		model.Comment{},
		model.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
