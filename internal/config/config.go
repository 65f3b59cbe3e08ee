// Package config provides centralized configuration management for the application.
// Settings come from struct-tag defaults, an optional YAML file, and environment
// variables, in that order, and are validated on startup to fail fast on
// misconfiguration.
package config

import (
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Transfer TransferConfig `yaml:"transfer"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shell    ShellConfig    `yaml:"shell"`
}

// StorageConfig locates the data file.
type StorageConfig struct {
	// DataDir holds the data file; created on startup if missing (default: StudentManagement)
	DataDir string `yaml:"data_dir" env:"ROSTER_DATA_DIR" default:"StudentManagement"`

	// DataFile is the data file name inside DataDir (default: student_data.txt)
	DataFile string `yaml:"data_file" env:"ROSTER_DATA_FILE" default:"student_data.txt"`
}

// TransferConfig holds spreadsheet import/export settings.
type TransferConfig struct {
	// ExportDir receives exported workbooks; relative paths are under DataDir (default: exports)
	ExportDir string `yaml:"export_dir" env:"ROSTER_EXPORT_DIR" default:"exports"`

	// SheetName is the worksheet written on export and read on import (default: 学生学籍)
	SheetName string `yaml:"sheet_name" env:"ROSTER_SHEET_NAME" default:"学生学籍"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`

	// File receives log output; "-" means stderr (default: roster.log)
	File string `yaml:"file" env:"LOG_FILE" default:"roster.log"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	// AltScreen runs the shell in the terminal's alternate screen (default: true)
	AltScreen bool `yaml:"alt_screen" env:"SHELL_ALT_SCREEN" default:"true"`

	// ConfirmDelete asks before deleting a record (default: true)
	ConfirmDelete bool `yaml:"confirm_delete" env:"SHELL_CONFIRM_DELETE" default:"true"`
}

// DataPath returns the full path of the data file.
func (c *Config) DataPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.DataFile)
}

// ExportDir returns the directory for exported workbooks.
func (c *Config) ExportDir() string {
	if filepath.IsAbs(c.Transfer.ExportDir) {
		return c.Transfer.ExportDir
	}
	return filepath.Join(c.Storage.DataDir, c.Transfer.ExportDir)
}

// LogToStderr reports whether logs go to stderr instead of a file.
func (c *LoggingConfig) LogToStderr() bool {
	return c.File == "-"
}
