package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the variable that points at the YAML config file.
const ConfigPathEnv = "ROSTER_CONFIG"

// DefaultConfigPath is used when ConfigPathEnv is unset. A missing file is skipped.
const DefaultConfigPath = "roster.yaml"

// maxSheetNameLen is the worksheet name limit imposed by the xlsx format.
const maxSheetNameLen = 31

// Load reads configuration from the YAML file named by ROSTER_CONFIG and
// from environment variables. It applies defaults for unset values and
// validates the result.
func Load() (*Config, error) {
	path := os.Getenv(ConfigPathEnv)
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path. An empty path or a
// missing file means defaults and environment only.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if err := walkStruct(reflect.ValueOf(cfg).Elem(), applyDefault); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := loadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if err := walkStruct(reflect.ValueOf(cfg).Elem(), applyEnv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("config paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func loadYAML(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// fieldFunc handles one tagged leaf field.
type fieldFunc func(field reflect.StructField, value reflect.Value) error

// walkStruct calls fn for every settable leaf field, recursing into nested structs.
func walkStruct(v reflect.Value, fn fieldFunc) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := walkStruct(fieldVal, fn); err != nil {
				return err
			}
			continue
		}

		if err := fn(field, fieldVal); err != nil {
			return err
		}
	}

	return nil
}

func applyDefault(field reflect.StructField, value reflect.Value) error {
	def := field.Tag.Get("default")
	if def == "" {
		return nil
	}
	if err := setField(value, def); err != nil {
		return fmt.Errorf("invalid default for %s=%q: %w", field.Name, def, err)
	}
	return nil
}

func applyEnv(field reflect.StructField, value reflect.Value) error {
	envName := field.Tag.Get("env")
	if envName == "" {
		return nil
	}

	raw := os.Getenv(envName)
	if raw == "" {
		return nil
	}
	if err := setField(value, raw); err != nil {
		return fmt.Errorf("invalid value for %s=%q: %w", envName, raw, err)
	}
	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		// Handle time.Duration specially
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// expandPaths resolves a leading "~" in path settings.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Storage.DataDir, &c.Transfer.ExportDir, &c.Logging.File} {
		expanded, err := expandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Storage validation
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		errs = append(errs, "ROSTER_DATA_DIR must not be empty")
	}
	if strings.TrimSpace(c.Storage.DataFile) == "" {
		errs = append(errs, "ROSTER_DATA_FILE must not be empty")
	} else if filepath.Base(c.Storage.DataFile) != c.Storage.DataFile {
		errs = append(errs, fmt.Sprintf("ROSTER_DATA_FILE (%q) must be a file name, not a path", c.Storage.DataFile))
	}

	// Transfer validation
	if strings.TrimSpace(c.Transfer.ExportDir) == "" {
		errs = append(errs, "ROSTER_EXPORT_DIR must not be empty")
	}
	sheet := c.Transfer.SheetName
	switch {
	case strings.TrimSpace(sheet) == "":
		errs = append(errs, "ROSTER_SHEET_NAME must not be empty")
	case len([]rune(sheet)) > maxSheetNameLen:
		errs = append(errs, fmt.Sprintf("ROSTER_SHEET_NAME (%q) must be at most %d characters", sheet, maxSheetNameLen))
	case strings.ContainsAny(sheet, `[]:*?/\`):
		errs = append(errs, fmt.Sprintf("ROSTER_SHEET_NAME (%q) must not contain any of []:*?/\\", sheet))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if strings.TrimSpace(c.Logging.File) == "" {
		errs = append(errs, `LOG_FILE must not be empty (use "-" for stderr)`)
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a one-line summary of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Storage: {DataPath: %q}, ", c.DataPath()))
	b.WriteString(fmt.Sprintf("Transfer: {ExportDir: %q, SheetName: %q}, ", c.ExportDir(), c.Transfer.SheetName))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, File: %q}, ",
		c.Logging.Level, c.Logging.Format, c.Logging.File))
	b.WriteString(fmt.Sprintf("Shell: {AltScreen: %v, ConfirmDelete: %v}",
		c.Shell.AltScreen, c.Shell.ConfirmDelete))
	b.WriteString("}")
	return b.String()
}
