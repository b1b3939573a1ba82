package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindPackageLocation(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		want      PackageLocation
		wantOK    bool
	}{
		{"package root", "/root/packages/foo", PackageLocation{"/root/packages/", "foo"}, true},
		{"package subdirectory", "/root/packages/foo/src/lib", PackageLocation{"/root/packages/", "foo"}, true},
		{"hyphenated name", "/repo/packages/my-pkg/src", PackageLocation{"/repo/packages/", "my-pkg"}, true},
		{"scoped package", "/root/packages/@scope/foo/src", PackageLocation{"/root/packages/", "@scope/foo"}, true},
		{"innermost packages directory", "/a/packages/outer/packages/inner/src", PackageLocation{"/a/packages/outer/packages/", "inner"}, true},
		{"not a package", "/root/src/foo", PackageLocation{}, false},
		{"uppercase name", "/root/packages/Foo/src", PackageLocation{}, false},
		{"packages at filesystem root", "/packages/foo", PackageLocation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			location, ok := FindPackageLocation(tt.directory)
			req.Equal(tt.wantOK, ok)
			req.Equal(tt.want, location)
		})
	}
}

func TestFixImports(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		code      string
		want      string
	}{
		{
			name:      "file at package root",
			directory: "/root/packages/foo",
			code:      "import bar from 'foo/bar';\n",
			want:      "import bar from './bar';\n",
		},
		{
			name:      "file in package subdirectory",
			directory: "/root/packages/foo/src",
			code:      "import bar from 'foo/bar';\n",
			want:      "import bar from '../bar';\n",
		},
		{
			name:      "same directory",
			directory: "/root/packages/foo/src",
			code:      "import x from 'foo/src/x';\n",
			want:      "import x from './x';\n",
		},
		{
			name:      "scoped package",
			directory: "/root/packages/@scope/foo/src",
			code:      "import { util } from '@scope/foo/util';\n",
			want:      "import { util } from '../util';\n",
		},
		{
			name:      "package name alone points at the package root",
			directory: "/root/packages/foo/src/deep",
			code:      "import foo from 'foo';\n",
			want:      "import foo from '../..';\n",
		},
		{
			name:      "other packages are untouched",
			directory: "/root/packages/foo/src",
			code:      "import bar from 'bar/baz';\nimport React from 'react';\n",
			want:      "import bar from 'bar/baz';\nimport React from 'react';\n",
		},
		{
			name:      "literal prefix also matches longer names",
			directory: "/root/packages/foo",
			code:      "import x from 'foo-extra/x';\n",
			want:      "import x from '../foo-extra/x';\n",
		},
		{
			name:      "double quotes are not rewritten",
			directory: "/root/packages/foo",
			code:      "import bar from \"foo/bar\";\n",
			want:      "import bar from \"foo/bar\";\n",
		},
		{
			name:      "missing semicolon is not rewritten",
			directory: "/root/packages/foo",
			code:      "import bar from 'foo/bar'\n",
			want:      "import bar from 'foo/bar'\n",
		},
		{
			name:      "missing closing quote is not rewritten",
			directory: "/root/packages/foo",
			code:      "import bar from 'foo/bar;\n",
			want:      "import bar from 'foo/bar;\n",
		},
		{
			name:      "every line is rewritten",
			directory: "/root/packages/foo/src",
			code:      "import a from 'foo/a';\nimport b from 'foo/b/c';\n",
			want:      "import a from '../a';\nimport b from '../b/c';\n",
		},
		{
			name:      "outside the packages convention",
			directory: "/root/apps/web/src",
			code:      "import bar from 'foo/bar';\n",
			want:      "import bar from 'foo/bar';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			once := FixImports(tt.directory, tt.code)
			req.Equal(tt.want, once)
			req.Equal(once, FixImports(tt.directory, once), "rewriting twice must be stable")
		})
	}
}

func TestFixImports_GreedySuffix(t *testing.T) {
	req := require.New(t)
	code := "import a from 'foo/a'; import b from 'foo/b';\n"

	// The suffix is greedy, so one match spans up to the last "';" of the line
	got := FixImports("/root/packages/foo", code)
	req.Equal("import a from './a'; import b from 'foo/b';\n", got)
}
