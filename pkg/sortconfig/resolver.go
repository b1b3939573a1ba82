package sortconfig

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/utils"
)

const (
	// PackageJSONFile is probed for an "importSort" property
	PackageJSONFile = "package.json"
	// RCFile holds the same configuration as a standalone JSON document
	RCFile = ".importsortrc"

	packageJSONKey = "importSort"
)

var (
	ErrNoParser      = stderrors.New(errors.ErrMsgNoParser)
	ErrInvalidConfig = stderrors.New(errors.ErrMsgInvalidImportConfig)
)

// Resolver finds the sort configuration for a file by probing the
// project configuration files above its directory
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a Resolver reading configuration files from fs
func NewResolver(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs}
}

// Resolve returns the parser and style for files with extension in directory.
// The nearest project configuration is merged over the matching default entry.
func (r *Resolver) Resolve(extension, directory string, defaults Configs) (SortConfig, error) {
	config, _ := defaults.ForExtension(extension)

	projectConfigs, source, err := r.findProjectConfigs(directory)
	if err != nil {
		return SortConfig{}, err
	}
	if projectConfig, ok := projectConfigs.ForExtension(extension); ok {
		if err := mergo.Merge(&config, projectConfig, mergo.WithOverride); err != nil {
			return SortConfig{}, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToMergeConfig, source, err)
		}
	}

	if config.Parser == "" {
		return SortConfig{}, fmt.Errorf("%w %q", ErrNoParser, extension)
	}
	return SortConfig{Parser: config.Parser, Style: config.Style}, nil
}

// findProjectConfigs returns the nearest configuration and the file it came from
func (r *Resolver) findProjectConfigs(directory string) (Configs, string, error) {
	var (
		configs Configs
		source  string
	)
	err := utils.WalkUp(directory, func(dir string) (bool, error) {
		pkgPath := filepath.Join(dir, PackageJSONFile)
		content, err := r.readFile(pkgPath)
		if err != nil {
			return false, err
		}
		if content != nil {
			if !gjson.ValidBytes(content) {
				return false, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToReadConfig, pkgPath, ErrInvalidConfig)
			}
			if section := gjson.GetBytes(content, packageJSONKey); section.Exists() {
				configs, err = parseConfigs(section)
				source = pkgPath
				return true, wrapSource(pkgPath, err)
			}
		}

		rcPath := filepath.Join(dir, RCFile)
		content, err = r.readFile(rcPath)
		if err != nil || content == nil {
			return false, err
		}
		if !gjson.ValidBytes(content) {
			return false, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToReadConfig, rcPath, ErrInvalidConfig)
		}
		configs, err = parseConfigs(gjson.ParseBytes(content))
		source = rcPath
		return true, wrapSource(rcPath, err)
	})
	return configs, source, err
}

// readFile returns nil content without error when path does not exist
func (r *Resolver) readFile(path string) ([]byte, error) {
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToReadConfig, path, err)
	}
	return content, nil
}

func parseConfigs(section gjson.Result) (Configs, error) {
	if !section.IsObject() {
		return nil, ErrInvalidConfig
	}

	configs := make(Configs)
	var err error
	section.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: entry %q is not an object", ErrInvalidConfig, key.String())
			return false
		}
		configs[key.String()] = LanguageConfig{
			Parser: value.Get("parser").String(),
			Style:  value.Get("style").String(),
		}
		return true
	})
	return configs, err
}

func wrapSource(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", errors.ErrMsgFailedToReadConfig, path, err)
}
