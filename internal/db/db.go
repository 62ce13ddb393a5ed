package db

import (
	stdlog "log"
	"strings"
	"time"

	"blogicum/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// SQLitePrefix selects the embedded SQLite driver, e.g. "sqlite:blog.db".
const SQLitePrefix = "sqlite:"

// Open connects to the database named by dsn. Replica DSNs, when given, are
// registered as read replicas.
func Open(dsn string, replicas []string, log zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(log, "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	conn, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, r := range replicas {
			dialectors = append(dialectors, dialector(r))
		}
		if err := conn.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, err
		}
	}

	log.Info().Bool("replicas", len(replicas) > 0).Str("driver", conn.Dialector.Name()).Msg("Database connection established")
	return conn, nil
}

func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, SQLitePrefix) {
		path := strings.TrimPrefix(dsn, SQLitePrefix)
		if !strings.Contains(path, "?") {
			path += "?_pragma=foreign_keys(1)"
		}
		return sqlite.Open(path)
	}
	return postgres.Open(dsn)
}

// Migrate creates or updates the schema.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
}

// Seed creates a default category and location on an empty database.
func Seed(conn *gorm.DB, log zerolog.Logger) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Msg("Categories already seeded, skipping")
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		category := models.Category{
			Title:       "General",
			Description: "Posts that do not fit anywhere else",
			Slug:        "general",
			IsPublished: true,
		}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		location := models.Location{Name: "Planet Earth", IsPublished: true}
		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		log.Info().Msg("Initial category and location created")
		return nil
	})
}
