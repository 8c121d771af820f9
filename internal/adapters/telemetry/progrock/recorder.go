// Package progrock provides the Progrock implementation of the telemetry
// adapter.
package progrock

import (
	"context"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock tape: every probe,
// compile and link becomes a vertex. A tape-backed Recorder renders the
// collected vertices on Close, so progress is visible on the terminal.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	tape *progrock.Tape
	out  io.Writer
}

// New creates a new Recorder rendering its tape to stderr on Close.
func New() *Recorder {
	return NewRendering(progrock.NewTape(), os.Stderr)
}

// NewRendering creates a Recorder over the tape, rendered to out on Close.
func NewRendering(tape *progrock.Tape, out io.Writer) *Recorder {
	r := NewRecorder(tape)
	r.tape = tape
	r.out = out
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex and attaches it to the context.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes the recording session and renders the tape.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if r.tape != nil {
		return r.tape.Render(r.out, progrock.DefaultUI())
	}
	return nil
}
