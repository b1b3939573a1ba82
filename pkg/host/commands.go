package host

import (
	"sync"

	"github.com/siyuan-infoblox/sort-imports/pkg/pipeline"
)

// Sorter normalizes a document's imports
type Sorter interface {
	Sort(doc pipeline.Document) (pipeline.Result, bool)
}

// SaveSettings controls sorting on save
type SaveSettings interface {
	SortOnSave() bool
}

// SortCurrentDocument sorts the editor's document and replaces its full
// range with the result. It reports whether the document was replaced.
func SortCurrentDocument(editor Editor, sorter Sorter) (bool, error) {
	doc, err := editor.Document()
	if err != nil {
		return false, err
	}

	result, ok := sorter.Sort(doc)
	if !ok || result.Code == "" || result.Code == doc.Text {
		return false, nil
	}
	if err := editor.ReplaceAll(result.Code); err != nil {
		return false, err
	}
	return true, nil
}

// OnSave sorts documents when they are saved
type OnSave struct {
	sorter   Sorter
	settings SaveSettings

	mu       sync.Mutex
	bypassed map[string]bool
}

// NewOnSave creates the save hook
func NewOnSave(sorter Sorter, settings SaveSettings) *OnSave {
	return &OnSave{
		sorter:   sorter,
		settings: settings,
		bypassed: make(map[string]bool),
	}
}

// Bypass runs save so that the save it produces for path is not sorted
func (o *OnSave) Bypass(path string, save func() error) error {
	o.mu.Lock()
	o.bypassed[path] = true
	o.mu.Unlock()

	if err := save(); err != nil {
		o.consumeBypass(path)
		return err
	}
	return nil
}

func (o *OnSave) consumeBypass(path string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.bypassed[path] {
		return false
	}
	delete(o.bypassed, path)
	return true
}

// HandleSave sorts the saved document unless sorting on save is disabled or
// the save was bypassed. The sorted text is written back without re-triggering the hook.
func (o *OnSave) HandleSave(editor Editor) (bool, error) {
	doc, err := editor.Document()
	if err != nil {
		return false, err
	}
	if o.consumeBypass(doc.FilePath) || !o.settings.SortOnSave() {
		return false, nil
	}

	result, ok := o.sorter.Sort(doc)
	if !ok || result.Code == "" || result.Code == doc.Text {
		return false, nil
	}
	err = o.Bypass(doc.FilePath, func() error {
		return editor.ReplaceAll(result.Code)
	})
	return err == nil, err
}

// SaveWithoutSorting saves the editor's document with the save hook bypassed
func SaveWithoutSorting(editor Editor, onSave *OnSave) error {
	doc, err := editor.Document()
	if err != nil {
		return err
	}
	return onSave.Bypass(doc.FilePath, editor.Save)
}
