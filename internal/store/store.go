// Package store persists finished matches to a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("store closed")

// Store wraps the gorm handle.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// dbOpened sees every pool Open creates.
var dbOpened = func(*sql.DB) {}

// Open connects to the SQLite file at path and migrates the schema.
// An empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	return open(path, log, Models...)
}

func open(path string, log zerolog.Logger, models ...interface{}) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql interface: %w", err)
	}
	dbOpened(sqlDB)
	// every pooled connection would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if path == "" {
		log.Debug().Msg("Using in-memory SQLite DB")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	}
	return &Store{db: db, logger: log}, nil
}

// Save inserts m and its throws, filling in the generated IDs.
func (s *Store) Save(m *Match) error {
	if s.db == nil {
		return ErrClosed
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	}); err != nil {
		return fmt.Errorf("save match seed %d: %w", m.Seed, err)
	}
	s.logger.Debug().Uint("id", m.ID).Int64("seed", m.Seed).Int("throws", len(m.Throws)).Msg("match saved")
	return nil
}

// Recent returns up to limit matches, newest first, with their throws.
func (s *Store) Recent(limit int) ([]Match, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var out []Match
	err := s.db.Preload("Throws", func(db *gorm.DB) *gorm.DB {
		return db.Order("time")
	}).Order("id desc").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent matches: %w", err)
	}
	return out, nil
}

// Totals aggregates every stored throw by result.
type Totals struct {
	Matches  int64
	Throws   int64
	ByResult map[string]int64
}

// Totals counts matches and throws across the whole database.
func (s *Store) Totals() (Totals, error) {
	if s.db == nil {
		return Totals{}, ErrClosed
	}
	t := Totals{ByResult: map[string]int64{}}
	if err := s.db.Model(&Match{}).Count(&t.Matches).Error; err != nil {
		return Totals{}, fmt.Errorf("count matches: %w", err)
	}
	var rows []struct {
		Result string
		N      int64
	}
	if err := s.db.Model(&Throw{}).Select("result, count(*) as n").Group("result").Scan(&rows).Error; err != nil {
		return Totals{}, fmt.Errorf("count throws: %w", err)
	}
	for _, r := range rows {
		t.ByResult[r.Result] = r.N
		t.Throws += r.N
	}
	return t, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
