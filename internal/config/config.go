// Package config loads config.toml from the executable's directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// FileName config file name, looked up beside the executable
const FileName = "config.toml"

// DefaultSourceFile fixed workbook name
const DefaultSourceFile = "สรุปต้นทุน BRIA NIPT รายเดือน ปี 2025.xlsx"

// Environment overrides, applied after config.toml
const (
	EnvDataDir  = "NIPT_DATA_DIR"
	EnvPort     = "NIPT_PORT"
	EnvLogLevel = "NIPT_LOG_LEVEL"
)

// AppConfig application configuration
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig dashboard server
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig source workbook location
type DataConfig struct {
	DataDir    string `toml:"data_dir"` // relative paths resolve against the executable's directory
	SourceFile string `toml:"source_file"`
	Watch      bool   `toml:"watch"`
}

// ReportConfig report content
type ReportConfig struct {
	Year          int     `toml:"year"`
	TATTargetDays float64 `toml:"tat_target_days"`
	TopSales      int     `toml:"top_sales"`
}

// LogConfig logging
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadConfigInfo load metadata
type LoadConfigInfo struct {
	Path          string // config file read, empty when defaults were used
	BaseDir       string // directory relative data paths resolve against
	PortSpecified bool
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        8501,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:    ".",
			SourceFile: DefaultSourceFile,
			Watch:      true,
		},
		Report: ReportConfig{
			Year:          2025,
			TATTargetDays: 5,
			TopSales:      10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml beside the executable, then .env and
// environment overrides
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadFromDir(exeDir)
}

// LoadFromDir loads dir/config.toml; a missing file yields defaults.
// A .env file in dir or the working directory feeds the environment overrides.
func LoadFromDir(dir string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{BaseDir: dir}
	config := DefaultConfig()

	configPath := filepath.Join(dir, FileName)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.Path = configPath
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, info, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	// godotenv never overrides variables already set
	_ = godotenv.Load(filepath.Join(dir, ".env"))
	_ = godotenv.Load()

	if err := applyEnv(config, &info, os.LookupEnv); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

func applyEnv(config *AppConfig, info *LoadConfigInfo, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		config.Data.DataDir = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s '%s': must be a number", EnvPort, v)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		config.Log.Level = v
	}
	return nil
}

// Validate checks the configuration and reports every problem at once
func (c *AppConfig) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if strings.TrimSpace(c.Data.SourceFile) == "" {
		problems = append(problems, "source file name cannot be empty")
	} else if filepath.Base(c.Data.SourceFile) != c.Data.SourceFile {
		problems = append(problems, fmt.Sprintf("source file '%s' must be a file name, not a path", c.Data.SourceFile))
	}
	if c.Report.Year < 2000 || c.Report.Year > 2100 {
		problems = append(problems, fmt.Sprintf("invalid report year %d", c.Report.Year))
	}
	if c.Report.TATTargetDays <= 0 {
		problems = append(problems, fmt.Sprintf("invalid TAT target %g: must be positive", c.Report.TATTargetDays))
	}
	if c.Report.TopSales < 1 || c.Report.TopSales > 100 {
		problems = append(problems, fmt.Sprintf("invalid top sales %d: must be between 1 and 100", c.Report.TopSales))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(c.Log.Level)) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Log.Level, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !contains(validFormats, strings.ToLower(c.Log.Format)) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Log.Format, validFormats))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// SourcePath absolute path of the source workbook
func (c *AppConfig) SourcePath(baseDir string) string {
	dir := c.Data.DataDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	path := filepath.Join(dir, c.Data.SourceFile)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ErrConfigExists config.toml already present and overwrite not requested
var ErrConfigExists = errors.New("config file already exists")

// SaveToDir writes dir/config.toml and returns its path.
// An existing file is kept unless overwrite is set.
func SaveToDir(config *AppConfig, dir string, overwrite bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return path, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return path, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// DataDir absolute directory expected to hold the source workbook.
// It is only resolved, never created.
func (c *AppConfig) DataDir(baseDir string) string {
	return filepath.Dir(c.SourcePath(baseDir))
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
