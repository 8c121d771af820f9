package ports

import (
	"context"
	"io"
)

// Telemetry records build progress as a set of vertices, one per unit of
// work (a probe, a compile, the final link).
type Telemetry interface {
	// Record starts a new vertex and attaches it to the returned context.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one unit of work being recorded.
type Vertex interface {
	// Stdout returns a writer capturing the work's standard output.
	Stdout() io.Writer
	// Stderr returns a writer capturing the work's error output.
	Stderr() io.Writer
	// Complete marks the vertex as finished, successfully or with err.
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
