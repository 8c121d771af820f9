package cc_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/extbuild/internal/adapters/cc"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func requireCompiler(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler on PATH")
	}
}

func TestProber_HasFunction(t *testing.T) {
	requireCompiler(t)
	t.Setenv("CC", "")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	p := cc.NewProber(cc.NewToolchain(), log)

	// printf exists everywhere a C compiler does.
	assert.True(t, p.HasFunction(context.Background(), "printf"))
	assert.False(t, p.HasFunction(context.Background(), "definitely_not_a_real_function_42"))
}

func TestProber_MemoizesResults(t *testing.T) {
	requireCompiler(t)
	t.Setenv("CC", "")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	log := mocks.NewMockLogger(ctrl)
	// One Info per distinct probe, regardless of how often it is asked.
	log.EXPECT().Info(gomock.Any()).Times(1)

	p := cc.NewProber(cc.NewToolchain(), log)
	first := p.HasFunction(context.Background(), "printf")
	for range 3 {
		assert.Equal(t, first, p.HasFunction(context.Background(), "printf"))
	}
}
