package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/detector"
	"go.trai.ch/extbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/extbuild/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			mode := detector.ResolveMode(detector.DetectEnvironment(), os.Getenv("EXTBUILD_OUTPUT"))
			if mode == detector.ModeRich {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
