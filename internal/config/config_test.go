package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every variable the loader reads, for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		ConfigPathEnv,
		"ROSTER_DATA_DIR", "ROSTER_DATA_FILE", "ROSTER_EXPORT_DIR", "ROSTER_SHEET_NAME",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"SHELL_ALT_SCREEN", "SHELL_CONFIRM_DELETE",
	} {
		t.Setenv(name, "")
	}
}

func validConfig() *Config {
	return &Config{
		Storage:  StorageConfig{DataDir: "data", DataFile: "student_data.txt"},
		Transfer: TransferConfig{ExportDir: "exports", SheetName: "学生学籍"},
		Logging:  LoggingConfig{Level: "info", Format: "text", File: "-"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.DataDir != "StudentManagement" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "StudentManagement")
	}
	if cfg.DataPath() != filepath.Join("StudentManagement", "student_data.txt") {
		t.Errorf("DataPath() = %q", cfg.DataPath())
	}
	if cfg.Transfer.SheetName != "学生学籍" {
		t.Errorf("Transfer.SheetName = %q, want %q", cfg.Transfer.SheetName, "学生学籍")
	}
	if cfg.Logging.File != "roster.log" {
		t.Errorf("Logging.File = %q, want %q", cfg.Logging.File, "roster.log")
	}
	if !cfg.Shell.AltScreen || !cfg.Shell.ConfirmDelete {
		t.Errorf("Shell = %+v, want both true", cfg.Shell)
	}
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roster.yaml")
	yaml := `
storage:
  data_dir: /srv/roster
transfer:
  sheet_name: 名单
logging:
  level: debug
  format: json
shell:
  confirm_delete: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Storage.DataDir != "/srv/roster" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/srv/roster")
	}
	if cfg.Storage.DataFile != "student_data.txt" {
		t.Errorf("Storage.DataFile = %q, want default", cfg.Storage.DataFile)
	}
	if cfg.Transfer.SheetName != "名单" {
		t.Errorf("Transfer.SheetName = %q, want %q", cfg.Transfer.SheetName, "名单")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.Shell.ConfirmDelete {
		t.Error("Shell.ConfirmDelete = true, want false from file")
	}
	if !cfg.Shell.AltScreen {
		t.Error("Shell.AltScreen = false, want default true")
	}
	if cfg.ExportDir() != filepath.Join("/srv/roster", "exports") {
		t.Errorf("ExportDir() = %q", cfg.ExportDir())
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() expected error for malformed YAML")
	}
}

func TestLoadFile_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHELL_ALT_SCREEN", "sometimes")

	_, err := LoadFile("")
	if err == nil {
		t.Fatal("LoadFile() expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "SHELL_ALT_SCREEN") {
		t.Errorf("error should mention SHELL_ALT_SCREEN: %v", err)
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ROSTER_DATA_DIR", "~/roster")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Storage.DataDir != filepath.Join(home, "roster") {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, filepath.Join(home, "roster"))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = " " }, "ROSTER_DATA_DIR"},
		{"data file is a path", func(c *Config) { c.Storage.DataFile = "a/b.txt" }, "ROSTER_DATA_FILE"},
		{"long sheet name", func(c *Config) { c.Transfer.SheetName = strings.Repeat("表", 32) }, "ROSTER_SHEET_NAME"},
		{"bad sheet char", func(c *Config) { c.Transfer.SheetName = "a/b" }, "ROSTER_SHEET_NAME"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"empty log file", func(c *Config) { c.Logging.File = "" }, "LOG_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if strings.Count(err.Error(), "\n  - ") != 2 {
		t.Errorf("expected two listed problems, got: %v", err)
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	for _, want := range []string{"student_data.txt", "学生学籍", `File: "-"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, missing %s", str, want)
		}
	}
	if !validConfig().Logging.LogToStderr() {
		t.Error("LogToStderr() = false for \"-\"")
	}
}
