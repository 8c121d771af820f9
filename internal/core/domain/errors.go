package domain

import "go.trai.ch/zerr"

var (
	// ErrIncompatibleOptions is returned when mutually exclusive build
	// options are combined.
	ErrIncompatibleOptions = zerr.New("incompatible build options")

	// ErrUnknownPlatform is returned when a platform identifier cannot be
	// parsed.
	ErrUnknownPlatform = zerr.New("unknown platform identifier")

	// ErrTaskAlreadyExists is returned when adding a task with a name that
	// already exists in the graph.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency
	// that does not exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the task dependency graph contains
	// a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in
	// the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrBuildExecutionFailed is returned when one or more build tasks
	// failed. The underlying task errors are joined into it.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
