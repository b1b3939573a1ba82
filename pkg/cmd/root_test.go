package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		inPlace, fromStdin, showVersion = false, false, false
		filePath, languageID, configFile = "", "", ""
		patterns, jobs = nil, 4
		readCommands = false
	})

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_Stdin(t *testing.T) {
	req := require.New(t)
	input := "import { b, a } from 'lib';\nimport z from 'z';\n"

	out, err := executeCommand(t, input, "--stdin", "--file-path", filepath.Join(t.TempDir(), "a.ts"))
	req.NoError(err)
	req.Equal("import { a, b } from 'lib';\nimport z from 'z';\n", out)
}

func TestRoot_StdinIneligibleLanguageEchoes(t *testing.T) {
	req := require.New(t)
	input := "import b from 'b';\nimport a from 'a';\n"

	out, err := executeCommand(t, input, "--stdin", "--file-path", filepath.Join(t.TempDir(), "a.ts"), "--language-id", "python")
	req.NoError(err)
	req.Equal(input, out)
}

func TestRoot_StdinRequiresFilePath(t *testing.T) {
	req := require.New(t)
	_, err := executeCommand(t, "", "--stdin")
	req.Error(err)
}

func TestRoot_RequiresPath(t *testing.T) {
	req := require.New(t)
	_, err := executeCommand(t, "")
	req.Error(err)
}

func TestRoot_Version(t *testing.T) {
	req := require.New(t)
	out, err := executeCommand(t, "", "--version")
	req.NoError(err)
	req.Contains(out, "sort-imports version")
}

func TestRoot_InPlace(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "a.js")
	req.NoError(os.WriteFile(path, []byte("import b from 'b';\nimport a from 'a';\n"), 0644))

	out, err := executeCommand(t, "", "--in-place", path)
	req.NoError(err)
	req.Empty(out)

	content, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal("import a from 'a';\nimport b from 'b';\n", string(content))
}
