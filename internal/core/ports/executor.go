// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/extbuild/internal/core/domain"
)

// Executor runs build tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the task's command. Command output is streamed to the
	// telemetry vertex attached to ctx, falling back to the logger.
	// It returns an error if the command exits non-zero.
	Execute(ctx context.Context, task *domain.Task) error
}
