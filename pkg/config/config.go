package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
)

// Setting keys, shared by config files, environment variables and flags
const (
	KeyLanguages                    = "languages"
	KeyDefaultSortStyle             = "default-sort-style"
	KeyCachePackageJSONConfigChecks = "cache-package-json-config-checks"
	KeySuppressWarnings             = "suppress-warnings"
	KeySortOnSave                   = "sort-on-save"
	KeyLogLevel                     = "log-level"
	KeyLogJSON                      = "log-json"
)

const (
	// EnvPrefix prefixes environment variables, e.g. SORT_IMPORTS_SUPPRESS_WARNINGS
	EnvPrefix = "SORT_IMPORTS"
	// FileName is the settings file looked up in the working and home directories
	FileName = ".sort-imports"
)

// DefaultLanguages are the language ids sorted when none are configured
var DefaultLanguages = []string{"javascript", "typescript"}

// Config reads settings live from viper, so changes to the settings file
// apply to the next sort. Reloads and reads are serialized by mu.
type Config struct {
	mu sync.Mutex
	v  *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLanguages, DefaultLanguages)
	v.SetDefault(KeyDefaultSortStyle, "")
	v.SetDefault(KeyCachePackageJSONConfigChecks, true)
	v.SetDefault(KeySuppressWarnings, false)
	v.SetDefault(KeySortOnSave, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogJSON, false)
	return v
}

// New returns settings built from defaults and the environment only
func New() *Config {
	return &Config{v: newViper()}
}

// Load reads the settings file and binds flags. Without configFile the
// settings file is optional and searched in the working and home directories.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadSettings, err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyLanguages, KeyDefaultSortStyle, KeyCachePackageJSONConfigChecks, KeySuppressWarnings, KeySortOnSave, KeyLogLevel, KeyLogJSON} {
			if flag := flags.Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadSettings, err)
				}
			}
		}
	}
	return &Config{v: v}, nil
}

// Set overrides a setting for the rest of the process
func (c *Config) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Set(key, value)
}

// ConfigFileUsed returns the settings file that was read, if any
func (c *Config) ConfigFileUsed() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.ConfigFileUsed()
}

// Watch reloads the settings file whenever it is written until ctx is
// canceled, calling onChange after each successful reload. The directory is
// watched so that editors replacing the file by rename are noticed.
func (c *Config) Watch(ctx context.Context, onChange func()) error {
	file := c.ConfigFileUsed()
	if file == "" {
		return nil
	}
	file, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != file || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.reload(); err == nil && onChange != nil {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// reload re-reads the settings file. A file that fails to parse leaves the
// previous settings in place.
func (c *Config) reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadSettings, err)
	}
	return nil
}

// Languages returns the language ids eligible for sorting. Environment
// values may be comma separated.
func (c *Config) Languages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var languages []string
	for _, entry := range c.v.GetStringSlice(KeyLanguages) {
		for _, language := range strings.Split(entry, ",") {
			if language = strings.TrimSpace(language); language != "" {
				languages = append(languages, language)
			}
		}
	}
	if languages == nil {
		return []string{}
	}
	return languages
}

func (c *Config) DefaultSortStyle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetString(KeyDefaultSortStyle)
}

func (c *Config) CachePackageJSONConfigChecks() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetBool(KeyCachePackageJSONConfigChecks)
}

func (c *Config) SuppressWarnings() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetBool(KeySuppressWarnings)
}

// SortOnSave reports whether saved documents are sorted
func (c *Config) SortOnSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetBool(KeySortOnSave)
}

func (c *Config) LogLevel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetString(KeyLogLevel)
}

func (c *Config) LogJSON() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v.GetBool(KeyLogJSON)
}
