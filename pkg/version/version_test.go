package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	req := require.New(t)
	info := Get()

	req.NotEmpty(info.Version)
	req.Equal(runtime.Version(), info.GoVersion)
	req.Equal(runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_String(t *testing.T) {
	req := require.New(t)
	info := Info{Version: "v1.2.3", GitCommit: "abc123", BuildDate: "2026-01-02", GoVersion: "go1.24", Platform: "linux/amd64"}

	out := info.String()
	req.True(strings.HasPrefix(out, "sort-imports version v1.2.3\n"))
	req.Contains(out, "Git commit: abc123")
	req.Contains(out, "Platform: linux/amd64")
}
