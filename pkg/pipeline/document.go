package pipeline

import (
	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
	"github.com/siyuan-infoblox/sort-imports/pkg/sorter"
)

// Document is a snapshot of an editor document taken when sorting starts
type Document struct {
	Text       string
	FilePath   string // absolute path
	LanguageID string
}

// Result holds the sorted text of a document
type Result struct {
	Code string
}

// Settings exposes the user configuration read on every invocation
type Settings interface {
	Languages() []string
	DefaultSortStyle() string
	CachePackageJSONConfigChecks() bool
	SuppressWarnings() bool
}

// Warner shows a warning to the user
type Warner interface {
	Warn(msg string, keyvals ...any)
}

// ConfigResolver resolves the parser and style for a file
type ConfigResolver interface {
	Resolve(extension, directory string, defaults sortconfig.Configs) (sortconfig.SortConfig, error)
}

// ImportSorter sorts the imports of a file's text
type ImportSorter interface {
	Sort(code, parser, style, filePath string) (*sorter.Result, error)
}
