package cc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/logger"
	"go.trai.ch/extbuild/internal/core/ports"
)

const (
	ToolchainNodeID graft.ID = "adapter.cc.toolchain"
	ProberNodeID    graft.ID = "adapter.cc.prober"
)

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        ToolchainNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			return NewToolchain(), nil
		},
	})

	graft.Register(graft.Node[ports.Prober]{
		ID:        ProberNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ToolchainNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Prober, error) {
			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProber(toolchain, log), nil
		},
	})
}
