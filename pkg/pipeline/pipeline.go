package pipeline

import (
	"path/filepath"

	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
)

type Config struct {
	Settings Settings
	Resolver ConfigResolver
	Sorter   ImportSorter
	Cache    *Cache             // shared for the life of the process, a new cache when nil
	Warner   Warner             // optional
	Defaults sortconfig.Configs // engine defaults, sortconfig.DefaultConfigs() when nil
}

// Pipeline normalizes the imports of documents
type Pipeline struct {
	settings Settings
	defaults sortconfig.Configs
	executor *Executor
}

// New creates a Pipeline from config
func New(config Config) *Pipeline {
	if config.Cache == nil {
		config.Cache = NewCache()
	}
	if config.Defaults == nil {
		config.Defaults = sortconfig.DefaultConfigs()
	}
	return &Pipeline{
		settings: config.Settings,
		defaults: config.Defaults,
		executor: NewExecutor(config.Resolver, config.Sorter, config.Cache, config.Warner),
	}
}

// Sort returns the normalized text of doc. It returns false when the
// document's language is not enabled or sorting failed; doc is never modified.
func (p *Pipeline) Sort(doc Document) (Result, bool) {
	if !IsEligibleLanguage(doc.LanguageID, p.settings.Languages()) {
		return Result{}, false
	}

	directory := filepath.Dir(doc.FilePath)
	code := FixImports(directory, doc.Text)

	sorted, ok := p.executor.Execute(Request{
		Code:             code,
		FilePath:         doc.FilePath,
		Extension:        filepath.Ext(doc.FilePath),
		Directory:        directory,
		Defaults:         p.defaults,
		DefaultStyle:     p.settings.DefaultSortStyle(),
		UseCache:         p.settings.CachePackageJSONConfigChecks(),
		SuppressWarnings: p.settings.SuppressWarnings(),
	})
	if !ok {
		return Result{}, false
	}
	return Result{Code: sorted}, true
}
