// Package config resolves workoutlog settings from built-in defaults, an
// optional YAML file and WORKOUTLOG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/workoutlog/internal/db"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
	"github.com/alexanderramin/workoutlog/internal/storage"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. WORKOUTLOG_DB_PATH.
// Only prefixed names are read.
const EnvPrefix = "WORKOUTLOG"

// Config holds everything needed to wire the store and the CLI.
type Config struct {
	// DBPath is the SQLite file. db.MemoryPath keeps entries in memory only.
	DBPath string `yaml:"db_path" split_words:"true"`

	// StorageKey names the key the entry list is stored under.
	StorageKey string `yaml:"storage_key" split_words:"true"`

	// MaxValueBytes caps the serialized entry list. Zero disables the cap.
	MaxValueBytes int `yaml:"max_value_bytes" split_words:"true"`

	// WorkoutTypes is the pick-list for the interactive form and completion.
	WorkoutTypes []string `yaml:"workout_types" split_words:"true"`

	LogUseCases bool `yaml:"log_use_cases" split_words:"true"`
}

// DefaultDir returns ~/.workoutlog, or the working directory when the home
// directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".workoutlog"
	}
	return filepath.Join(home, ".workoutlog")
}

// DefaultPath is the config file read when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DBPath:        filepath.Join(DefaultDir(), "workoutlog.db"),
		StorageKey:    repository.DefaultEntriesKey,
		MaxValueBytes: storage.DefaultMaxValueBytes,
		WorkoutTypes:  append([]string(nil), domain.DefaultWorkoutTypes...),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.DBPath = expandHome(strings.TrimSpace(c.DBPath))
	c.StorageKey = strings.TrimSpace(c.StorageKey)

	types := make([]string, 0, len(c.WorkoutTypes))
	for _, t := range c.WorkoutTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = append(types, domain.DefaultWorkoutTypes...)
	}
	c.WorkoutTypes = types
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.StorageKey == "" {
		return errors.New("storage_key must not be empty")
	}
	if c.MaxValueBytes < 0 {
		return fmt.Errorf("max_value_bytes must be 0 or greater, got %d", c.MaxValueBytes)
	}
	return nil
}

// Ephemeral reports whether entries live only for the current process.
func (c *Config) Ephemeral() bool {
	return c.DBPath == db.MemoryPath
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
