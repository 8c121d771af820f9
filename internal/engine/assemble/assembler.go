// Package assemble turns a resolved extension target into a task graph and
// executes it: one compile task per source, one link task producing the
// loadable module. Task results are cached by input hash, so unchanged
// sources are not recompiled.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task was skipped because it was cached.
	StatusCached TaskStatus = "Cached"
)

// Options control a single assembly run.
type Options struct {
	// BuildDir is the directory receiving objects and the linked module.
	BuildDir string
	// Parallelism bounds the number of concurrently running tasks.
	Parallelism int
	// NoCache forces every task to run, ignoring stored build info.
	NoCache bool
}

// Assembler plans and executes extension builds.
type Assembler struct {
	toolchain ports.Toolchain
	executor  ports.Executor
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewAssembler creates a new Assembler.
func NewAssembler(
	toolchain ports.Toolchain,
	executor ports.Executor,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Assembler {
	return &Assembler{
		toolchain: toolchain,
		executor:  executor,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Plan builds the validated task graph for the extension target and returns
// it together with the path of the module the link task produces.
func (a *Assembler) Plan(ext *domain.Extension, buildDir string) (*domain.Graph, string, error) {
	graph := domain.NewGraph()
	modulePath := a.toolchain.ModulePath(buildDir, ext)

	objects := make([]string, 0, len(ext.Sources))
	compileTasks := make([]domain.InternedString, 0, len(ext.Sources))

	for _, source := range ext.Sources {
		object := a.toolchain.ObjectPath(buildDir, source)
		objects = append(objects, object)

		task := domain.Task{
			Name:    domain.NewInternedString("compile " + source),
			Command: a.toolchain.CompileCommand(ext, source, object),
			Inputs:  []domain.InternedString{domain.NewInternedString(source)},
			Outputs: []domain.InternedString{domain.NewInternedString(object)},
		}
		if err := graph.AddTask(&task); err != nil {
			return nil, "", err
		}
		compileTasks = append(compileTasks, task.Name)
	}

	inputs := make([]domain.InternedString, 0, len(objects))
	for _, object := range objects {
		inputs = append(inputs, domain.NewInternedString(object))
	}
	link := domain.Task{
		Name:         domain.NewInternedString("link " + ext.Name),
		Command:      a.toolchain.LinkCommand(ext, objects, modulePath),
		Inputs:       inputs,
		Outputs:      []domain.InternedString{domain.NewInternedString(modulePath)},
		Dependencies: compileTasks,
	}
	if err := graph.AddTask(&link); err != nil {
		return nil, "", err
	}

	if err := graph.Validate(); err != nil {
		return nil, "", err
	}
	return graph, modulePath, nil
}

// Build plans and runs the full assembly for the extension target.
// It returns the path of the linked module.
func (a *Assembler) Build(ctx context.Context, ext *domain.Extension, opts Options) (string, error) {
	graph, modulePath, err := a.Plan(ext, opts.BuildDir)
	if err != nil {
		return "", err
	}

	if err := a.prepareBuildDir(graph); err != nil {
		return "", err
	}

	a.logger.Info(fmt.Sprintf("assembling %q: %d tasks", ext.Name, graph.TaskCount()))
	if err := a.Run(ctx, graph, opts); err != nil {
		return "", err
	}
	return modulePath, nil
}

// prepareBuildDir creates the directories all task outputs land in.
func (a *Assembler) prepareBuildDir(graph *domain.Graph) error {
	for task := range graph.Walk() {
		for _, output := range task.Outputs {
			dir := filepath.Dir(output.String())
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return zerr.Wrap(err, "failed to create output directory")
			}
		}
	}
	return nil
}

// Run executes the tasks in the graph with the parallelism from opts.
func (a *Assembler) Run(ctx context.Context, graph *domain.Graph, opts Options) error {
	parallelism := max(opts.Parallelism, 1)
	state := a.newRunState(ctx, graph, parallelism, opts.NoCache)

	// Nil-ed after the first receipt so the loop blocks on results alone
	// while in-flight tasks drain.
	done := state.ctx.Done()

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-done:
			done = nil
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	if state.errs != nil {
		return zerr.Wrap(errors.Join(domain.ErrBuildExecutionFailed, state.errs), "assembly failed")
	}
	return nil
}

type result struct {
	task domain.InternedString
	err  error
}

type runState struct {
	a           *Assembler
	graph       *domain.Graph
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
	noCache     bool

	mu     sync.Mutex
	status map[domain.InternedString]TaskStatus
}

func (a *Assembler) newRunState(ctx context.Context, graph *domain.Graph, parallelism int, noCache bool) *runState {
	taskCount := graph.TaskCount()
	inDegree := make(map[domain.InternedString]int, taskCount)
	tasks := make(map[domain.InternedString]domain.Task, taskCount)
	status := make(map[domain.InternedString]TaskStatus, taskCount)

	var ready []domain.InternedString
	for task := range graph.Walk() {
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
		status[task.Name] = StatusPending
		if len(task.Dependencies) == 0 {
			ready = append(ready, task.Name)
		}
	}

	return &runState{
		a:           a,
		graph:       graph,
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
		noCache:     noCache,
		status:      status,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) setStatus(name domain.InternedString, s TaskStatus) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.status[name] = s
}

func (state *runState) getStatus(name domain.InternedString) TaskStatus {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.status[name]
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.setStatus(taskName, StatusRunning)

		go func(t domain.Task) {
			state.resultsCh <- result{task: t.Name, err: state.runTask(state.ctx, &t)}
		}(state.tasks[taskName])
	}
}

// runTask executes one task under a telemetry vertex, honoring the cache.
func (state *runState) runTask(ctx context.Context, task *domain.Task) error {
	ctx, vertex := state.a.telemetry.Record(ctx, task.Name.String())

	inputHash, err := state.a.hasher.ComputeInputHash(task, ".")
	if err != nil {
		vertex.Complete(err)
		return err
	}

	if !state.noCache && state.isCacheHit(task, inputHash) {
		state.setStatus(task.Name, StatusCached)
		vertex.Cached()
		return nil
	}

	if err := state.a.executor.Execute(ctx, task); err != nil {
		vertex.Complete(err)
		return err
	}

	err = state.recordBuildInfo(task, inputHash)
	vertex.Complete(err)
	return err
}

// isCacheHit reports whether stored build info matches the input hash and
// every output is still present on disk.
func (state *runState) isCacheHit(task *domain.Task, inputHash string) bool {
	info, err := state.a.store.Get(task.Name.String())
	if err != nil || info == nil || info.InputHash != inputHash {
		return false
	}
	for _, output := range task.Outputs {
		if _, err := os.Stat(output.String()); err != nil {
			return false
		}
	}
	return true
}

func (state *runState) recordBuildInfo(task *domain.Task, inputHash string) error {
	outputs := make([]string, 0, len(task.Outputs))
	for _, output := range task.Outputs {
		outputs = append(outputs, output.String())
	}
	outputHash, err := state.a.hasher.ComputeOutputHash(outputs, ".")
	if err != nil {
		return zerr.Wrap(err, "failed to compute output hash")
	}

	info := domain.BuildInfo{
		TaskName:   task.Name.String(),
		InputHash:  inputHash,
		OutputHash: outputHash,
		Status:     string(StatusCompleted),
		Timestamp:  time.Now(),
	}
	if err := state.a.store.Put(info); err != nil {
		return zerr.Wrap(err, "failed to store build info")
	}
	return nil
}

func (state *runState) handleResult(res result) {
	state.active--
	if res.err != nil {
		state.errs = errors.Join(state.errs, zerr.With(zerr.Wrap(res.err, "task failed"), "task", res.task.String()))
		state.setStatus(res.task, StatusFailed)
		return
	}

	if state.getStatus(res.task) != StatusCached {
		state.setStatus(res.task, StatusCompleted)
	}
	for _, dep := range state.graph.Dependents(res.task) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
