package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Migrate applies every .sql file under dir in the given filesystem,
// in file-name order. Statements are idempotent DDL, so re-running a
// migration is safe.
func Migrate(ctx context.Context, db *sqlx.DB, files fs.FS, dir string) error {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return fmt.Errorf("fs.ReadDir(%s): %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		contents, err := fs.ReadFile(files, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s): %w", name, err)
		}
		for _, statement := range splitStatements(string(contents)) {
			if _, err := db.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
	}
	return nil
}

// splitStatements splits a migration file into single statements. The
// driver rejects multi-statement execs, and the migrations contain no
// literal semicolons.
func splitStatements(contents string) []string {
	var statements []string
	for _, part := range strings.Split(contents, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			statements = append(statements, part)
		}
	}
	return statements
}
