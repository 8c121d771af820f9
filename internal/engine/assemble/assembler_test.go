package assemble_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/telemetry"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.trai.ch/extbuild/internal/engine/assemble"
	"go.uber.org/mock/gomock"
)

type deps struct {
	toolchain *mocks.MockToolchain
	executor  *mocks.MockExecutor
	hasher    *mocks.MockHasher
	store     *mocks.MockBuildInfoStore
	logger    *mocks.MockLogger
}

func newAssembler(t *testing.T) (*assemble.Assembler, *deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &deps{
		toolchain: mocks.NewMockToolchain(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockBuildInfoStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	d.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	a := assemble.NewAssembler(d.toolchain, d.executor, d.hasher, d.store, telemetry.NewNoOp(), d.logger)
	return a, d
}

func extension() *domain.Extension {
	return &domain.Extension{
		Name:    "yara",
		Sources: []string{"yara-python.c", filepath.Join("yara", "libyara", "compiler.c")},
	}
}

func TestAssembler_Plan(t *testing.T) {
	a, d := newAssembler(t)
	ext := extension()

	d.toolchain.EXPECT().ModulePath("build", ext).Return(filepath.Join("build", "yara.so"))
	for _, src := range ext.Sources {
		obj := filepath.Join("build", "obj", src+".o")
		d.toolchain.EXPECT().ObjectPath("build", src).Return(obj)
		d.toolchain.EXPECT().CompileCommand(ext, src, obj).Return([]string{"cc", "-c", src})
	}
	d.toolchain.EXPECT().LinkCommand(ext, gomock.Any(), filepath.Join("build", "yara.so")).Return([]string{"cc", "-shared"})

	graph, modulePath, err := a.Plan(ext, "build")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("build", "yara.so"), modulePath)
	assert.Equal(t, 3, graph.TaskCount())

	link, err := graph.GetTask(domain.NewInternedString("link yara"))
	require.NoError(t, err)
	assert.Len(t, link.Dependencies, 2)
	assert.Equal(t, []domain.InternedString{domain.NewInternedString(modulePath)}, link.Outputs)
}

// graphOf wires the named tasks into a validated graph. The last task
// depends on all the others, mirroring a link step.
func graphOf(t *testing.T, names ...string) *domain.Graph {
	t.Helper()

	g := domain.NewGraph()
	var compiled []domain.InternedString
	for _, name := range names[:len(names)-1] {
		task := domain.Task{Name: domain.NewInternedString(name)}
		require.NoError(t, g.AddTask(&task))
		compiled = append(compiled, task.Name)
	}
	require.NoError(t, g.AddTask(&domain.Task{
		Name:         domain.NewInternedString(names[len(names)-1]),
		Dependencies: compiled,
	}))
	require.NoError(t, g.Validate())
	return g
}

func TestAssembler_Run_LinkWaitsForCompiles(t *testing.T) {
	a, d := newAssembler(t)
	g := graphOf(t, "compile a.c", "compile b.c", "link yara")

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil).Times(3)
	d.hasher.EXPECT().ComputeOutputHash(gomock.Any(), ".").Return("o", nil).Times(3)
	d.store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(3)
	d.store.EXPECT().Put(gomock.Any()).Return(nil).Times(3)

	var mu sync.Mutex
	var order []string
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.Task) error {
			mu.Lock()
			order = append(order, task.Name.String())
			mu.Unlock()
			return nil
		}).Times(3)

	err := a.Run(context.Background(), g, assemble.Options{Parallelism: 2})
	require.NoError(t, err)

	require.Len(t, order, 3)
	assert.Equal(t, "link yara", order[2])
}

func TestAssembler_Run_CacheHitSkipsExecution(t *testing.T) {
	a, d := newAssembler(t)

	output := filepath.Join(t.TempDir(), "a.o")
	require.NoError(t, os.WriteFile(output, []byte("obj"), 0o644))

	g := domain.NewGraph()
	require.NoError(t, g.AddTask(&domain.Task{
		Name:    domain.NewInternedString("compile a.c"),
		Outputs: []domain.InternedString{domain.NewInternedString(output)},
	}))
	require.NoError(t, g.Validate())

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil)
	d.store.EXPECT().Get("compile a.c").Return(&domain.BuildInfo{
		TaskName:  "compile a.c",
		InputHash: "h",
	}, nil)

	// No Execute and no Put expectations: a hit must touch neither.
	err := a.Run(context.Background(), g, assemble.Options{Parallelism: 1})
	require.NoError(t, err)
}

func TestAssembler_Run_StaleOutputDefeatsCache(t *testing.T) {
	a, d := newAssembler(t)

	output := filepath.Join(t.TempDir(), "missing.o")

	g := domain.NewGraph()
	require.NoError(t, g.AddTask(&domain.Task{
		Name:    domain.NewInternedString("compile a.c"),
		Outputs: []domain.InternedString{domain.NewInternedString(output)},
	}))
	require.NoError(t, g.Validate())

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil)
	d.hasher.EXPECT().ComputeOutputHash(gomock.Any(), ".").Return("o", nil)
	d.store.EXPECT().Get("compile a.c").Return(&domain.BuildInfo{
		TaskName:  "compile a.c",
		InputHash: "h",
	}, nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)
	d.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := a.Run(context.Background(), g, assemble.Options{Parallelism: 1})
	require.NoError(t, err)
}

func TestAssembler_Run_NoCacheForcesExecution(t *testing.T) {
	a, d := newAssembler(t)
	g := graphOf(t, "compile a.c", "link yara")

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil).Times(2)
	d.hasher.EXPECT().ComputeOutputHash(gomock.Any(), ".").Return("o", nil).Times(2)
	d.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	err := a.Run(context.Background(), g, assemble.Options{Parallelism: 1, NoCache: true})
	require.NoError(t, err)
}

func TestAssembler_Run_CancellationDrainsActiveTasks(t *testing.T) {
	a, d := newAssembler(t)
	g := graphOf(t, "compile a.c", "link yara")

	ctx, cancel := context.WithCancel(context.Background())

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil)
	d.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, _ *domain.Task) error {
			cancel()
			<-c.Done()
			return c.Err()
		})

	err := a.Run(ctx, g, assemble.Options{Parallelism: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssembler_Run_FailureStopsDependents(t *testing.T) {
	a, d := newAssembler(t)
	g := graphOf(t, "compile a.c", "link yara")

	d.hasher.EXPECT().ComputeInputHash(gomock.Any(), ".").Return("h", nil)
	d.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(domain.ErrBuildExecutionFailed)

	err := a.Run(context.Background(), g, assemble.Options{Parallelism: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}
