package host

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/pipeline"
)

// Editor is the host side of an open document
type Editor interface {
	// Document snapshots the current text of the document
	Document() (pipeline.Document, error)
	// ReplaceAll replaces the full range of the document with text
	ReplaceAll(text string) error
	// Save persists the document
	Save() error
}

// FileEditor edits a document stored on a filesystem; the file is the buffer
type FileEditor struct {
	fs         afero.Fs
	path       string
	languageID string
}

// NewFileEditor opens path on fs, inferring the language from its extension
func NewFileEditor(fs afero.Fs, path string) (*FileEditor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}
	return &FileEditor{fs: fs, path: abs, languageID: LanguageIDForPath(abs)}, nil
}

func (e *FileEditor) Document() (pipeline.Document, error) {
	content, err := afero.ReadFile(e.fs, e.path)
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}
	return pipeline.Document{Text: string(content), FilePath: e.path, LanguageID: e.languageID}, nil
}

func (e *FileEditor) ReplaceAll(text string) error {
	perm := os.FileMode(0644)
	if info, err := e.fs.Stat(e.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := afero.WriteFile(e.fs, e.path, []byte(text), perm); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	return nil
}

// Save rewrites the current content, as an editor does on an explicit save
func (e *FileEditor) Save() error {
	doc, err := e.Document()
	if err != nil {
		return err
	}
	return e.ReplaceAll(doc.Text)
}

// BufferEditor holds a document in memory and writes it to out on Save
type BufferEditor struct {
	doc pipeline.Document
	out io.Writer
}

// NewBufferEditor creates an editor over doc
func NewBufferEditor(doc pipeline.Document, out io.Writer) *BufferEditor {
	if doc.LanguageID == "" {
		doc.LanguageID = LanguageIDForPath(doc.FilePath)
	}
	return &BufferEditor{doc: doc, out: out}
}

func (e *BufferEditor) Document() (pipeline.Document, error) {
	return e.doc, nil
}

func (e *BufferEditor) ReplaceAll(text string) error {
	e.doc.Text = text
	return nil
}

func (e *BufferEditor) Save() error {
	if _, err := io.WriteString(e.out, e.doc.Text); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	return nil
}
