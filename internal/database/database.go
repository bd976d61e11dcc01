package database

import (
	"log"
	"strings"

	"github.com/pathakanu/medibot/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLitePath is the database file used when DATABASE_URL is unset.
const DefaultSQLitePath = "medibot.db"

// New creates a GORM database connection.
// When databaseURL is provided PostgreSQL is used, otherwise SQLite is used.
func New(databaseURL string) (*gorm.DB, error) {
	return open(databaseURL, DefaultSQLitePath)
}

// Open is like New but lets callers pick the SQLite file, used by tests.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	return open(databaseURL, sqlitePath)
}

func open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormConfig)
	}
	if err != nil {
		return nil, err
	}

	if databaseURL == "" {
		// SQLite allows a single writer; serialize at the pool instead of
		// surfacing SQLITE_BUSY to concurrent requests.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model.Reminder{}, &model.Note{}, &model.WaterCount{}); err != nil {
		return nil, err
	}

	logBackend(db, sqlitePath)
	return db, nil
}

func logBackend(db *gorm.DB, sqlitePath string) {
	dialector := db.Dialector.Name()
	switch strings.ToLower(dialector) {
	case "postgres":
		log.Printf("database: connected to PostgreSQL")
	case "sqlite":
		log.Printf("database: using SQLite %s", sqlitePath)
	default:
		log.Printf("database: connected via %s", dialector)
	}
}
