package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"

	"github.com/skotani/lingrade/internal/attempt"
	"github.com/skotani/lingrade/internal/config"
	"github.com/skotani/lingrade/internal/database"
	"github.com/skotani/lingrade/internal/grading"
	"github.com/skotani/lingrade/internal/questionbank"
)

// Source selects where banks are read from and attempts are written.
type Source string

const (
	SourceYAML Source = "yaml"
	SourceDB   Source = "db"
)

var _ pflag.Value = (*Source)(nil)

func (s *Source) Set(val string) error {
	switch Source(val) {
	case SourceYAML, SourceDB:
		*s = Source(val)
		return nil
	default:
		return fmt.Errorf("must be one of %q or %q", SourceYAML, SourceDB)
	}
}

func (s *Source) String() string {
	return string(*s)
}

func (s *Source) Type() string {
	return "source"
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newEngine(cfg *config.Config) *grading.Engine {
	return grading.NewEngine(grading.Config{
		FuzzyThreshold:  cfg.Engine.FuzzyThreshold,
		KeywordCoverage: cfg.Engine.KeywordCoverage,
	})
}

// newRepositories picks the storage backend. With SourceDB, banks and
// attempts live in MySQL; otherwise banks come from the YAML
// directories and attempts go to session log files. The returned
// close function is non-nil only for the database backend.
func newRepositories(cfg *config.Config, source Source) (questionbank.Repository, attempt.Repository, func() error, error) {
	if source != SourceDB {
		return questionbank.NewYAMLRepository(cfg.Banks.Directories),
			attempt.NewFileRepository(cfg.Attempts.LogDirectory),
			nil,
			nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database.Open > %w", err)
	}
	return questionbank.NewDBRepository(db), attempt.NewDBRepository(db), closeDB(db), nil
}

func closeDB(db *sqlx.DB) func() error {
	return func() error {
		return db.Close()
	}
}
