// Package telemetry provides the no-op telemetry adapter and the node that
// selects the recording backend for the current environment.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/extbuild/internal/core/ports"
)

// NoOp is a telemetry implementation that records nothing.
type NoOp struct{}

// NewNoOp creates a new no-op telemetry instance.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns the context unchanged. Without a vertex attached, task
// output falls through to the executor's logger instead of being captured.
func (n *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &noOpVertex{}
}

// Close does nothing.
func (n *NoOp) Close() error { return nil }

type noOpVertex struct{}

func (v *noOpVertex) Stdout() io.Writer { return io.Discard }
func (v *noOpVertex) Stderr() io.Writer { return io.Discard }
func (v *noOpVertex) Complete(error)    {}
func (v *noOpVertex) Cached()           {}
