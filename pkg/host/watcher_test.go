package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/sort-imports/pkg/logger"
	"github.com/siyuan-infoblox/sort-imports/pkg/pipeline"
	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
	"github.com/siyuan-infoblox/sort-imports/pkg/sorter"
)

type watchSettings struct{}

func (watchSettings) Languages() []string                { return []string{"javascript", "typescript"} }
func (watchSettings) DefaultSortStyle() string           { return "" }
func (watchSettings) CachePackageJSONConfigChecks() bool { return true }
func (watchSettings) SuppressWarnings() bool             { return true }
func (watchSettings) SortOnSave() bool                   { return true }

func TestWatcher_SortsSavedFiles(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	path := filepath.Join(root, "src", "a.ts")
	req.NoError(os.MkdirAll(filepath.Dir(path), 0755))
	req.NoError(os.WriteFile(path, []byte("export {};\n"), 0644))

	startWatcher(t, root)
	req.NoError(os.WriteFile(path, []byte("import b from 'b';\nimport a from 'a';\n"), 0644))

	req.Eventually(func() bool {
		content, err := os.ReadFile(path)
		return err == nil && string(content) == "import a from 'a';\nimport b from 'b';\n"
	}, 5*time.Second, 20*time.Millisecond)
}

func startWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	fs := afero.NewOsFs()
	p := pipeline.New(pipeline.Config{
		Settings: watchSettings{},
		Resolver: sortconfig.NewResolver(fs),
		Sorter:   sorter.New(),
	})
	w := NewWatcher(fs, NewOnSave(p, watchSettings{}), logger.Discard(), nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, root) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Give the watcher time to register the directories
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestWatcher_SaveWithoutSortingCommand(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	path := filepath.Join(root, "a.ts")
	unsorted := "import b from 'b';\nimport a from 'a';\n"
	req.NoError(os.WriteFile(path, []byte(unsorted), 0644))

	w := startWatcher(t, root)
	req.NoError(w.Submit(context.Background(), Command{Name: CommandSaveWithoutSorting, Path: path}))

	req.Never(func() bool {
		content, err := os.ReadFile(path)
		return err != nil || string(content) != unsorted
	}, 500*time.Millisecond, 20*time.Millisecond)

	// The bypass covers one save only
	req.NoError(os.WriteFile(path, []byte(unsorted), 0644))
	req.Eventually(func() bool {
		content, err := os.ReadFile(path)
		return err == nil && string(content) == "import a from 'a';\nimport b from 'b';\n"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_SortCommand(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	path := filepath.Join(root, "a.js")
	req.NoError(os.WriteFile(path, []byte("import b from 'b';\nimport a from 'a';\n"), 0644))

	w := startWatcher(t, root)
	req.NoError(w.Submit(context.Background(), Command{Name: CommandSort, Path: path}))

	req.Eventually(func() bool {
		content, err := os.ReadFile(path)
		return err == nil && string(content) == "import a from 'a';\nimport b from 'b';\n"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_UnknownCommandIsIgnored(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	path := filepath.Join(root, "a.js")
	unsorted := "import b from 'b';\nimport a from 'a';\n"
	req.NoError(os.WriteFile(path, []byte(unsorted), 0644))

	w := startWatcher(t, root)
	req.NoError(w.Submit(context.Background(), Command{Name: "format", Path: path}))

	content, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(unsorted, string(content))
}
