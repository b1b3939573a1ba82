package pipeline

import (
	"fmt"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
)

// Request describes one sort of a document's text
type Request struct {
	Code      string
	FilePath  string
	Extension string
	Directory string

	Defaults         sortconfig.Configs
	DefaultStyle     string
	UseCache         bool
	SuppressWarnings bool
}

// Executor runs the sorting engine and contains its failures
type Executor struct {
	resolver ConfigResolver
	sorter   ImportSorter
	cache    *Cache
	warner   Warner
}

// NewExecutor creates an Executor sharing cache across calls
func NewExecutor(resolver ConfigResolver, sorter ImportSorter, cache *Cache, warner Warner) *Executor {
	return &Executor{
		resolver: resolver,
		sorter:   sorter,
		cache:    cache,
		warner:   warner,
	}
}

// Execute returns the sorted code, or false when resolution or sorting failed.
// A failure emits one warning unless req.SuppressWarnings is set.
func (e *Executor) Execute(req Request) (string, bool) {
	code, err := e.run(req)
	if err != nil {
		if !req.SuppressWarnings && e.warner != nil {
			e.warner.Warn(fmt.Sprintf("%s: %v", errors.ErrMsgSortingImports, err), "file", req.FilePath)
		}
		return "", false
	}
	return code, true
}

func (e *Executor) run(req Request) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", errors.ErrMsgEnginePanic, r)
		}
	}()

	config, err := e.resolveConfig(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolveConf, err)
	}

	result, err := e.sorter.Sort(req.Code, config.Parser, config.Style, req.FilePath)
	if err != nil {
		return "", err
	}
	if result == nil {
		return req.Code, nil
	}
	return result.Code, nil
}

// resolveConfig resolves fresh when caching is off, otherwise reuses the cached config
func (e *Executor) resolveConfig(req Request) (sortconfig.SortConfig, error) {
	resolve := func() (sortconfig.SortConfig, error) {
		defaults, err := sortconfig.WithStyle(req.Defaults, req.DefaultStyle)
		if err != nil {
			return sortconfig.SortConfig{}, err
		}
		return e.resolver.Resolve(req.Extension, req.Directory, defaults)
	}

	if !req.UseCache {
		return resolve()
	}
	return e.cache.GetOrResolve(resolve)
}
