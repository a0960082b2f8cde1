package attempt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skotani/lingrade/internal/questionbank"
)

// FileRepository records attempts as YAML files, one file per session,
// for setups without a database.
type FileRepository struct {
	dir string

	// now is swapped in tests to get stable file names.
	now func() time.Time
}

// NewFileRepository creates a repository writing under dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir, now: time.Now}
}

// BatchCreate writes the session's attempts to a timestamped file.
func (r *FileRepository) BatchCreate(ctx context.Context, attempts []Attempt) error {
	if len(attempts) == 0 {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", r.dir, err)
	}

	path := filepath.Join(r.dir, r.now().Format("20060102-150405")+".yaml")
	if err := questionbank.WriteYamlFile(path, attempts); err != nil {
		return fmt.Errorf("questionbank.WriteYamlFile(%s) > %w", path, err)
	}
	return nil
}

// FindByBank loads every session file and returns the attempts for one
// bank, oldest first.
func (r *FileRepository) FindByBank(ctx context.Context, bankID string) ([]Attempt, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", r.dir, err)
	}

	var attempts []Attempt
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}

		var session []Attempt
		if err := yaml.Unmarshal(contents, &session); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
		}
		for _, attempt := range session {
			if attempt.BankID == bankID {
				attempts = append(attempts, attempt)
			}
		}
	}

	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].AnsweredAt.Before(attempts[j].AnsweredAt)
	})
	return attempts, nil
}
