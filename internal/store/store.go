// Package store publishes the lookup table into a SQL database so other
// services can join against it.
package store

import (
	"context"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/lookup"
)

// Supported dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// Config selects the target database.
type Config struct {
	Dialect string `mapstructure:"dialect" yaml:"dialect"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// Place is the published row for one place code.
type Place struct {
	GeoID     string `gorm:"column:geo_id;primaryKey;size:7"`
	PlaceName string `gorm:"column:place_name"`
	StateAbbr string `gorm:"column:state_abbr;size:2;index"`
	StateName string `gorm:"column:state_name"`
}

// TableName pins the table name regardless of naming strategy.
func (Place) TableName() string {
	return "fips_places"
}

// Store wraps a database connection.
type Store struct {
	db      *gorm.DB
	dialect string
}

// Open connects to the configured database. An empty dialect means SQLite,
// in which case the DSN is a file path.
func Open(cfg Config) (*Store, error) {
	dialect := strings.ToLower(cfg.Dialect)
	if dialect == "" {
		dialect = constants.DefaultPublishDialect
	}
	if cfg.DSN == "" {
		return nil, errors.NewConfigError("store", "a DSN is required to publish", nil)
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DialectMySQL:
		dialector = mysql.Open(cfg.DSN)
	case DialectSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, errors.NewConfigError("store", "unsupported dialect "+cfg.Dialect, nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WrapResource("connect", "database", dialect, err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the fips_places table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Place{}); err != nil {
		return errors.WrapResource("migrate", "table", Place{}.TableName(), err)
	}
	return nil
}

// Publish replaces the contents of fips_places with entries in a single
// transaction.
func (s *Store) Publish(ctx context.Context, entries []lookup.Entry) error {
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	places := make([]Place, len(entries))
	for i, e := range entries {
		places[i] = Place{
			GeoID:     e.GeoID,
			PlaceName: e.PlaceName,
			StateAbbr: e.StateAbbr,
			StateName: e.StateName,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Place{}).Error; err != nil {
			return err
		}
		if len(places) == 0 {
			return nil
		}
		return tx.CreateInBatches(places, constants.PublishBatchSize).Error
	})
	if err != nil {
		return errors.WrapResource("publish", "table", Place{}.TableName(), err)
	}

	logging.FromContext(ctx).Info().
		Str("dialect", s.dialect).
		Int("rows", len(places)).
		Msg("Published lookup table")
	return nil
}

// Count returns the number of published rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Place{}).Count(&n).Error; err != nil {
		return 0, errors.WrapResource("count", "table", Place{}.TableName(), err)
	}
	return n, nil
}

// Get returns one published place.
func (s *Store) Get(ctx context.Context, geoID string) (*Place, error) {
	var p Place
	if err := s.db.WithContext(ctx).First(&p, "geo_id = ?", geoID).Error; err != nil {
		return nil, errors.WrapResource("get", "place", geoID, err)
	}
	return &p, nil
}
