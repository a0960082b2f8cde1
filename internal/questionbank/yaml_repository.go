package questionbank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

// WriteYamlFile writes data as YAML to path, creating the file.
func WriteYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

func isYamlFile(path string, info os.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// YAMLRepository loads question banks from YAML files under a set of
// directories. Files are discovered recursively; every .yml/.yaml file
// is one bank.
type YAMLRepository struct {
	directories []string
}

// NewYAMLRepository creates a repository over the given directories.
func NewYAMLRepository(directories []string) *YAMLRepository {
	return &YAMLRepository{directories: directories}
}

// FindAll loads every bank from every configured directory, sorted by
// bank ID for deterministic ordering. A missing directory is skipped
// rather than failing the whole load.
func (r *YAMLRepository) FindAll(ctx context.Context) ([]Bank, error) {
	var banks []Bank
	for _, dir := range r.directories {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !isYamlFile(path, info) {
				return nil
			}

			bank, err := readYamlFile[Bank](path)
			if err != nil {
				return fmt.Errorf("readYamlFile(%s) > %w", path, err)
			}
			banks = append(banks, bank)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
		}
	}

	sort.Slice(banks, func(i, j int) bool {
		return banks[i].ID < banks[j].ID
	})
	return banks, nil
}

// FindByID loads the bank with the given ID, or ErrBankNotFound.
func (r *YAMLRepository) FindByID(ctx context.Context, id string) (*Bank, error) {
	banks, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.FindAll > %w", err)
	}
	for i := range banks {
		if banks[i].ID == id {
			return &banks[i], nil
		}
	}
	return nil, fmt.Errorf("bank %q: %w", id, ErrBankNotFound)
}
