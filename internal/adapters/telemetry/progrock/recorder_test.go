package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	ptel "go.trai.ch/extbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/extbuild/internal/core/ports"
)

func TestRecorder_Record(t *testing.T) {
	rec := ptel.NewRendering(progrock.NewTape(), io.Discard)

	ctx, vertex := rec.Record(context.Background(), "compile:yara-python.c")
	require.NotNil(t, vertex)

	attached, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, attached)

	_, err := vertex.Stdout().Write([]byte("cc -c yara-python.c\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	assert.NoError(t, rec.Close())
}

func TestRecorder_VertexOutcomes(t *testing.T) {
	rec := ptel.NewRendering(progrock.NewTape(), io.Discard)
	defer rec.Close() //nolint:errcheck // test cleanup

	_, failed := rec.Record(context.Background(), "link")
	failed.Complete(errors.New("undefined symbol"))

	_, cached := rec.Record(context.Background(), "compile:scan.c")
	cached.Cached()
	cached.Complete(nil)
}

func TestRecorder_CloseRendersTape(t *testing.T) {
	var out bytes.Buffer
	rec := ptel.NewRendering(progrock.NewTape(), &out)

	_, vertex := rec.Record(context.Background(), "compile:scan.c")
	vertex.Complete(nil)

	require.NoError(t, rec.Close())
	assert.Contains(t, out.String(), "compile:scan.c")
}
