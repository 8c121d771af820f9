package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/extbuild/internal/adapters/detector"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name string
		auto detector.OutputMode
		flag string
		want detector.OutputMode
	}{
		{name: "explicit rich", auto: detector.ModePlain, flag: "rich", want: detector.ModeRich},
		{name: "explicit plain", auto: detector.ModeRich, flag: "plain", want: detector.ModePlain},
		{name: "ci alias", auto: detector.ModeRich, flag: "ci", want: detector.ModePlain},
		{name: "auto keeps detection", auto: detector.ModeRich, flag: "auto", want: detector.ModeRich},
		{name: "empty keeps detection", auto: detector.ModePlain, flag: "", want: detector.ModePlain},
		{name: "garbage keeps detection", auto: detector.ModePlain, flag: "tty", want: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.auto, tt.flag))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}
