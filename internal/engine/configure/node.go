package configure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/extbuild/internal/adapters/cc"
	"go.trai.ch/extbuild/internal/adapters/fs"
	"go.trai.ch/extbuild/internal/adapters/logger"
	"go.trai.ch/extbuild/internal/core/ports"
)

// NodeID is the unique identifier for the configurator Graft node.
const NodeID graft.ID = "engine.configurator"

func init() {
	graft.Register(graft.Node[*Configurator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cc.ProberNodeID,
			fs.WalkerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Configurator, error) {
			prober, err := graft.Dep[ports.Prober](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[ports.SourceWalker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewConfigurator(prober, walker, log), nil
		},
	})
}
