package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"github.com/spf13/afero"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/logger"
	"github.com/siyuan-infoblox/sort-imports/pkg/utils"
)

const (
	// DefaultSaveDebounce collapses the burst of events a single save produces
	DefaultSaveDebounce = 200 * time.Millisecond
	// DefaultSaveMaxWait bounds how long a file written continuously waits
	DefaultSaveMaxWait = 2 * time.Second
)

// Commands accepted by Watcher.Submit
const (
	CommandSort               = "sort"
	CommandSaveWithoutSorting = "save-without-sorting"
)

// Command asks the watch loop to run an editor command on a file
type Command struct {
	Name string
	Path string
}

// Watcher treats writes to source files below a directory as editor saves
type Watcher struct {
	fs       afero.Fs
	onSave   *OnSave
	log      logger.Logger
	debounce time.Duration
	maxWait  time.Duration
	match    func(path string) bool
	commands chan Command
}

// NewWatcher creates a Watcher handing saves of files accepted by match to onSave
func NewWatcher(fs afero.Fs, onSave *OnSave, log logger.Logger, match func(path string) bool) *Watcher {
	if match == nil {
		match = utils.IsSourceFile
	}
	return &Watcher{
		fs:       fs,
		onSave:   onSave,
		log:      log,
		debounce: DefaultSaveDebounce,
		maxWait:  DefaultSaveMaxWait,
		match:    match,
		commands: make(chan Command),
	}
}

// Submit hands cmd to the running watch loop, which runs it between saves
func (w *Watcher) Submit(ctx context.Context, cmd Command) error {
	select {
	case w.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run watches root until ctx is canceled. Saves are handled one at a time.
func (w *Watcher) Run(ctx context.Context, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}
	defer watcher.Close()

	if err := w.addDirs(watcher, root); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}
	w.log.Info(errors.InfoMsgWatching, "root", root)

	ready := make(chan string, 16)
	// one debouncer per path, only touched by this loop
	debounced := make(map[string]func())
	var cancels []func()
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	schedule := func(path string) {
		trigger, ok := debounced[path]
		if !ok {
			var cancel func()
			trigger, cancel = debounce.NewWithMaxWait(w.debounce, w.maxWait, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})
			debounced[path] = trigger
			cancels = append(cancels, cancel)
		}
		trigger()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirs(watcher, event.Name); err != nil {
						w.log.Warn(errors.ErrMsgFailedToWatch, "path", event.Name, "error", err)
					}
					continue
				}
			}
			if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && w.match(event.Name) {
				schedule(event.Name)
			}
		case path := <-ready:
			w.handleSave(path)
		case cmd := <-w.commands:
			w.handleCommand(cmd)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error(errors.ErrMsgFailedToWatch, "error", err)
		}
	}
}

func (w *Watcher) handleSave(path string) {
	editor, err := NewFileEditor(w.fs, path)
	if err != nil {
		w.log.Error(errors.InfoMsgErrorProcessing, "file", path, "error", err)
		return
	}
	sorted, err := w.onSave.HandleSave(editor)
	switch {
	case err != nil:
		w.log.Error(errors.InfoMsgErrorProcessing, "file", path, "error", err)
	case sorted:
		w.log.Info(errors.InfoMsgSortedFile, "file", path)
	default:
		w.log.Debug(errors.InfoMsgSkippedFile, "file", path)
	}
}

func (w *Watcher) handleCommand(cmd Command) {
	editor, err := NewFileEditor(w.fs, cmd.Path)
	if err != nil {
		w.log.Error(errors.InfoMsgErrorProcessing, "file", cmd.Path, "error", err)
		return
	}

	switch cmd.Name {
	case CommandSort:
		var sorted bool
		if sorted, err = SortCurrentDocument(editor, w.onSave.sorter); err == nil && sorted {
			w.log.Info(errors.InfoMsgSortedFile, "file", cmd.Path)
		}
	case CommandSaveWithoutSorting:
		if err = SaveWithoutSorting(editor, w.onSave); err == nil {
			w.log.Info(errors.InfoMsgSavedWithoutSorting, "file", cmd.Path)
		}
	default:
		err = fmt.Errorf("%s %q", errors.ErrMsgUnknownCommand, cmd.Name)
	}
	if err != nil {
		w.log.Error(errors.InfoMsgErrorProcessing, "file", cmd.Path, "error", err)
	}
}

// addDirs watches root and every directory below it that is not ignored
func (w *Watcher) addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root {
			if rel, err := filepath.Rel(root, path); err == nil && utils.IsIgnoredPath(rel) {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}
