package config

import (
	"fmt"
	"os"
	"path/filepath"

	"quizbot/internal/spec"
)

// DefaultConfigFile is the config file name searched in the working directory.
const DefaultConfigFile = ".quizbot.yml"

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}

// BaseDir returns the directory holding the config file. Relative paths in
// the config (quiz file, output dir, history db) resolve against it.
func BaseDir(configPath string) (string, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Dir(abs), nil
}

// ResolvePath resolves a config-relative path against the base directory.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
