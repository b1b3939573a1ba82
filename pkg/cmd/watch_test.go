package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/sort-imports/pkg/host"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected host.Command
		wantErr  bool
	}{
		{
			name:     "sort",
			line:     "sort src/a.ts",
			expected: host.Command{Name: host.CommandSort, Path: "src/a.ts"},
		},
		{
			name:     "save without sorting",
			line:     "save-without-sorting /work/app/index.js",
			expected: host.Command{Name: host.CommandSaveWithoutSorting, Path: "/work/app/index.js"},
		},
		{
			name:     "path with spaces",
			line:     "  sort my project/a.ts  ",
			expected: host.Command{Name: host.CommandSort, Path: "my project/a.ts"},
		},
		{
			name:    "missing path",
			line:    "sort",
			wantErr: true,
		},
		{
			name:    "unknown command",
			line:    "format a.ts",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			command, err := parseCommand(tt.line)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, command)
		})
	}
}
