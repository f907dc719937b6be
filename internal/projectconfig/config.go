// Package projectconfig provides the ProjectConfig struct and loader for
// .leadval.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".leadval.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultStorePath = ".leadval/leadval.db"
	DefaultTenant    = "default"

	DefaultServerPort = 3000

	DefaultReportFormat = "text"

	DefaultMinKappa       = 0.61
	DefaultMinCorrelation = 0.7
	DefaultMaxMAE         = 20.0
	DefaultMinAccuracy    = 0.7
)

// Environment variables that override file values.
const (
	EnvStorePath  = "LEADVAL_DB"
	EnvTenant     = "LEADVAL_TENANT"
	EnvServerPort = "LEADVAL_PORT"
)

// StoreConfig holds database settings.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds REST API server settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// ReportConfig holds report rendering defaults.
type ReportConfig struct {
	Format     string           `yaml:"format,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
}

// ThresholdsConfig holds the quality gates checked by `report --check`.
// Pointers distinguish an explicit 0 (gate disabled) from an unset value.
type ThresholdsConfig struct {
	MinKappa       *float64 `yaml:"min_kappa,omitempty"`
	MinCorrelation *float64 `yaml:"min_correlation,omitempty"`
	MaxMAE         *float64 `yaml:"max_mae,omitempty"`
	MinAccuracy    *float64 `yaml:"min_accuracy,omitempty"`
}

// RatingConfig holds defaults for the interactive rating form.
type RatingConfig struct {
	ExpertName string `yaml:"expert_name,omitempty"`
	ExpertRole string `yaml:"expert_role,omitempty"`
	Blind      *bool  `yaml:"blind,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .leadval.yaml.
type ProjectConfig struct {
	Tenant string       `yaml:"tenant,omitempty"`
	Store  StoreConfig  `yaml:"store,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Report ReportConfig `yaml:"report,omitempty"`
	Rating RatingConfig `yaml:"rating,omitempty"`

	// Dir is the directory holding the loaded config file, empty when
	// defaults are in use.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Tenant: DefaultTenant,
		Store: StoreConfig{
			Path: DefaultStorePath,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Report: ReportConfig{
			Format: DefaultReportFormat,
			Thresholds: ThresholdsConfig{
				MinKappa:       floatPtr(DefaultMinKappa),
				MinCorrelation: floatPtr(DefaultMinCorrelation),
				MaxMAE:         floatPtr(DefaultMaxMAE),
				MinAccuracy:    floatPtr(DefaultMinAccuracy),
			},
		},
		Rating: RatingConfig{
			Blind: boolPtr(false),
		},
	}
}

// Load finds .leadval.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. A .env file next
// to the config file (or in startDir) and then the process environment
// override file values. A relative store path is resolved against the
// config file's directory. If no config file is found, defaults are used
// with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	default:
		var fileCfg ProjectConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		mergeConfig(cfg, &fileCfg)
		cfg.Dir = filepath.Dir(path)
	}

	envDir := cfg.Dir
	if envDir == "" {
		envDir = startDir
	}
	dotenv, err := readDotEnv(filepath.Join(envDir, ".env"))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if cfg.Dir != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(cfg.Dir, cfg.Store.Path)
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .leadval.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return env, nil
}

func applyEnv(cfg *ProjectConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStorePath); ok && v != "" {
		cfg.Store.Path = v
	}
	if v, ok := lookup(EnvTenant); ok && v != "" {
		cfg.Tenant = v
	}
	if v, ok := lookup(EnvServerPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return fmt.Errorf("%s: invalid port %q", EnvServerPort, v)
		}
		cfg.Server.Port = port
	}
	return nil
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Tenant != "" {
		dst.Tenant = src.Tenant
	}
	if src.Store.Path != "" {
		dst.Store.Path = src.Store.Path
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}

	// Thresholds
	th := src.Report.Thresholds
	if th.MinKappa != nil {
		dst.Report.Thresholds.MinKappa = th.MinKappa
	}
	if th.MinCorrelation != nil {
		dst.Report.Thresholds.MinCorrelation = th.MinCorrelation
	}
	if th.MaxMAE != nil {
		dst.Report.Thresholds.MaxMAE = th.MaxMAE
	}
	if th.MinAccuracy != nil {
		dst.Report.Thresholds.MinAccuracy = th.MinAccuracy
	}

	// Rating
	if src.Rating.ExpertName != "" {
		dst.Rating.ExpertName = src.Rating.ExpertName
	}
	if src.Rating.ExpertRole != "" {
		dst.Rating.ExpertRole = src.Rating.ExpertRole
	}
	if src.Rating.Blind != nil {
		dst.Rating.Blind = src.Rating.Blind
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}

