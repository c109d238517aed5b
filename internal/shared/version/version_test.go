package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		linked string
		info   *debug.BuildInfo
		want   string
	}{
		{"linked semver", "1.4.0", nil, "v1.4.0"},
		{"linked short form", "v2.1", nil, "v2.1.0"},
		{"dev falls back to build info", "dev", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}, "v0.3.1"},
		{"devel build info", "dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev"},
		{"nothing known", "", nil, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.linked, tt.info))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize(" 1.2.3 "))
	assert.Equal(t, "v1.2.3", Normalize("v1.2.3"))
	assert.Equal(t, "", Normalize(""))
}
