package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// OperationTimeout bounds a single store or spreadsheet operation.
// Can be overridden for testing.
var OperationTimeout = 2 * time.Minute

// run executes fn as a tea.Cmd under OperationTimeout. A deadline error is
// reported as a timeout; any other error becomes an ErrMsg.
func run(parent context.Context, fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, OperationTimeout)
		defer cancel()

		msg, err := fn(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrMsg{Err: fmt.Errorf("operation timed out after %v: %w", OperationTimeout, err)}
			}
			return ErrMsg{Err: err}
		}
		return msg
	}
}
