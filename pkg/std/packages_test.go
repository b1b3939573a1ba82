package std

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsBuiltinModule(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name       string
		moduleName string
		expected   bool
	}{
		{"builtin module - fs", "fs", true},
		{"builtin module - path", "path", true},
		{"builtin subpath - fs/promises", "fs/promises", true},
		{"builtin subpath - stream/web", "stream/web", true},
		{"node scheme", "node:test", true},
		{"bare node scheme", "node:", false},
		{"npm package - react", "react", false},
		{"scoped package", "@scope/fs", false},
		{"relative path", "./fs", false},
		{"lookalike package", "fs-extra", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsBuiltinModule(tt.moduleName)
			req.Equal(tt.expected, result, "IsBuiltinModule(%q)", tt.moduleName)
		})
	}
}

func TestBuiltinModulesMapNotEmpty(t *testing.T) {
	req := require.New(t)
	req.NotEmpty(BuiltinModules, "BuiltinModules map should not be empty")

	// Check that some well-known modules are present
	expectedModules := []string{"fs", "os", "path", "http", "crypto", "events"}
	for _, module := range expectedModules {
		req.True(BuiltinModules[module], "Expected builtin module %q not found in BuiltinModules map", module)
	}
}
