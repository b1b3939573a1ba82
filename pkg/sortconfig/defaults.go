package sortconfig

import (
	"fmt"
	"strings"

	"dario.cat/mergo"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
)

// Parser and style names understood by the bundled sorting engine
const (
	ParserBabylon    = "babylon"
	ParserTypeScript = "typescript"

	StyleESLint = "eslint"
	StyleModule = "module"
)

// SortConfig selects the parser and the style handed to the sorting engine
type SortConfig struct {
	Parser string
	Style  string
}

// LanguageConfig is the configuration registered for a group of file extensions
type LanguageConfig struct {
	Parser string `json:"parser"`
	Style  string `json:"style"`
}

// Configs maps a comma-separated extension list (e.g. ".js, .jsx") to its configuration
type Configs map[string]LanguageConfig

// DefaultConfigs returns the per-language defaults shipped with the engine
func DefaultConfigs() Configs {
	return Configs{
		".js, .jsx, .es6, .es, .mjs, .cjs": {Parser: ParserBabylon, Style: StyleESLint},
		".ts, .tsx":                        {Parser: ParserTypeScript, Style: StyleESLint},
	}
}

// WithStyle returns a copy of configs where every entry uses style.
// An empty style keeps the styles already present in configs.
func WithStyle(configs Configs, style string) (Configs, error) {
	merged := make(Configs, len(configs))
	for key, cfg := range configs {
		if err := mergo.Merge(&cfg, LanguageConfig{Style: style}, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToMergeConfig, err)
		}
		merged[key] = cfg
	}
	return merged, nil
}

// ForExtension returns the entry whose extension list contains extension
func (c Configs) ForExtension(extension string) (LanguageConfig, bool) {
	for key, cfg := range c {
		for _, ext := range strings.Split(key, ",") {
			if strings.TrimSpace(ext) == extension {
				return cfg, true
			}
		}
	}
	return LanguageConfig{}, false
}
