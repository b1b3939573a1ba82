package formatter

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/host"
	"github.com/siyuan-infoblox/sort-imports/pkg/logger"
	"github.com/siyuan-infoblox/sort-imports/pkg/utils"
)

type FormatterConfig struct {
	InPlace  bool     // whether to modify files in place
	Patterns []string // doublestar patterns selecting files inside directories
	Jobs     int      // files sorted concurrently, 1 when not positive
}

// formatter sorts the imports of files on disk
type formatter struct {
	config FormatterConfig
	sorter host.Sorter
	fs     afero.Fs
	out    io.Writer
	log    logger.Logger
}

// New creates a formatter writing stdout output to out
func New(config FormatterConfig, sorter host.Sorter, fs afero.Fs, out io.Writer, log logger.Logger) *formatter {
	if config.Jobs < 1 {
		config.Jobs = 1
	}
	return &formatter{
		config: config,
		sorter: sorter,
		fs:     fs,
		out:    out,
		log:    log,
	}
}

func (f *formatter) getInPlace() bool {
	return f.config.InPlace
}

// ProcessFileWithOutput sorts a single file. In place, the file is rewritten;
// otherwise the sorted text is printed when verbose. It reports whether the
// imports were out of order.
func (f *formatter) ProcessFileWithOutput(path string, verbose bool) (bool, error) {
	editor, err := host.NewFileEditor(f.fs, path)
	if err != nil {
		return false, err
	}

	if f.getInPlace() {
		return host.SortCurrentDocument(editor, f.sorter)
	}

	doc, err := editor.Document()
	if err != nil {
		return false, err
	}
	buffer := host.NewBufferEditor(doc, f.out)
	changed, err := host.SortCurrentDocument(buffer, f.sorter)
	if err != nil {
		return false, err
	}
	if verbose {
		return changed, buffer.Save()
	}
	return changed, nil
}

// ProcessFile sorts a single file and prints it unless sorting in place
func (f *formatter) ProcessFile(path string) error {
	_, err := f.ProcessFileWithOutput(path, true)
	return err
}

// ProcessFiles sorts multiple files concurrently
func (f *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	var processedCount, errorCount atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.Jobs)
	for _, filePath := range filePaths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			changed, err := f.ProcessFileWithOutput(filePath, false)
			switch {
			case err != nil:
				f.log.Error(errors.InfoMsgErrorProcessing, "file", filePath, "error", err)
				errorCount.Add(1)
				return nil
			case changed && f.getInPlace():
				f.log.Info(errors.InfoMsgSortedFile, "file", filePath)
			case changed:
				f.log.Info(errors.InfoMsgWouldSortFile, "file", filePath)
			default:
				f.log.Debug(errors.InfoMsgUnchangedFile, "file", filePath)
			}
			processedCount.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.log.Info(errors.InfoMsgProcessedCount, "succeeded", processedCount.Load(), "failed", errorCount.Load())
	if errorCount.Load() > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount.Load())
	}
	return nil
}

// ProcessPath processes a file or directory path
func (f *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return f.ProcessFile(path)
	}

	// When processing directories, in-place mode is recommended
	if !f.getInPlace() {
		f.log.Warn(errors.WarnMsgProcessingDirWithoutInPlace)
	}

	files, err := utils.FindSourceFiles(path, f.config.Patterns...)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSourceFiles, err)
	}
	if len(files) == 0 {
		f.log.Info(errors.InfoMsgNoSourceFilesFound, "path", path)
		return nil
	}

	f.log.Info(errors.InfoMsgFoundSourceFiles, "count", len(files), "path", path)
	return f.ProcessFiles(ctx, files)
}
