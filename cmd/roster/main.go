package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/roster/internal/application"
	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/handler"
	"github.com/JonMunkholm/roster/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "系统启动失败:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogOutput(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logOut)

	ctx := logging.WithSessionID(context.Background(), uuid.NewString())
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded", "env_file", envLoaded, "config", cfg.String())

	// Detect the data file before loading so the first-run case can be told apart
	startup := []string{"正在初始化系统..."}
	if _, err := os.Stat(cfg.DataPath()); err == nil {
		startup = append(startup, "检测到现有数据文件")
	} else {
		startup = append(startup, "未检测到数据文件，将在保存时创建")
	}

	store, report, err := core.OpenStore(ctx, cfg.DataPath())
	if err != nil {
		logger.Error("failed to open student store", "path", cfg.DataPath(), "error", err)
		return errors.New(core.FormatUserError(err))
	}
	for _, w := range report.Warnings {
		startup = append(startup, w.String())
	}
	if report.FileExists {
		startup = append(startup, fmt.Sprintf("成功加载%d条学生记录", report.Loaded))
	}

	students := handler.NewStudents(ctx, store, cfg.ExportDir(), cfg.Transfer.SheetName)
	model := application.New(students, application.Options{
		DataPath:      cfg.DataPath(),
		ConfirmDelete: cfg.Shell.ConfirmDelete,
		Startup:       startup,
	})

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	opts := []tea.ProgramOption{tea.WithContext(sigCtx)}
	if cfg.Shell.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	logger.Info("shell starting", "records", store.Len())
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("shell exited with error", "error", err)
		return err
	}
	logger.Info("shell stopped")

	return nil
}

// openLogOutput opens the configured log destination. "-" means stderr.
func openLogOutput(cfg config.LoggingConfig) (io.Writer, func(), error) {
	if cfg.LogToStderr() {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("close log file", "error", err)
		}
	}, nil
}
