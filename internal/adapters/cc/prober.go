package cc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.Prober = (*Prober)(nil)

// Prober implements capability probing with the host C compiler: it compiles
// and links a minimal program referencing the probed function. Results are
// memoized per function/library combination.
type Prober struct {
	compiler string
	logger   ports.Logger

	mu    sync.Mutex
	cache map[string]bool
}

// NewProber creates a Prober using the given toolchain's compiler.
func NewProber(toolchain ports.Toolchain, logger ports.Logger) *Prober {
	return &Prober{
		compiler: toolchain.Compiler(),
		logger:   logger,
		cache:    make(map[string]bool),
	}
}

// HasFunction reports whether the named function can be linked on the host.
// Compiler diagnostics are discarded: a failed probe is an answer, not an
// error worth surfacing.
func (p *Prober) HasFunction(ctx context.Context, function string, libraries ...string) bool {
	key := function + "|" + strings.Join(libraries, ",")

	p.mu.Lock()
	if ok, hit := p.cache[key]; hit {
		p.mu.Unlock()
		return ok
	}
	p.mu.Unlock()

	ok := p.probe(ctx, function, libraries)

	p.mu.Lock()
	p.cache[key] = ok
	p.mu.Unlock()

	p.logger.Info(fmt.Sprintf("probe %s: %v", function, ok))
	return ok
}

func (p *Prober) probe(ctx context.Context, function string, libraries []string) bool {
	dir, err := os.MkdirTemp("", "extbuild-probe-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir) //nolint:errcheck // Best effort cleanup

	src := filepath.Join(dir, "probe.c")
	program := fmt.Sprintf("char %[1]s(void);\nint main(void) { %[1]s(); return 0; }\n", function)
	if err := os.WriteFile(src, []byte(program), 0o600); err != nil {
		return false
	}

	args := []string{src, "-o", filepath.Join(dir, "probe.bin")}
	for _, lib := range libraries {
		args = append(args, "-l"+lib)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	defer devnull.Close() //nolint:errcheck // Best effort close in defer

	cmd := exec.CommandContext(ctx, p.compiler, args...) //nolint:gosec // compiler comes from $CC
	cmd.Stdout = devnull
	cmd.Stderr = devnull

	return cmd.Run() == nil
}
