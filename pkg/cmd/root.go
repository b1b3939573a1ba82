package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/sort-imports/pkg/config"
	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/formatter"
	"github.com/siyuan-infoblox/sort-imports/pkg/host"
	"github.com/siyuan-infoblox/sort-imports/pkg/logger"
	"github.com/siyuan-infoblox/sort-imports/pkg/pipeline"
	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
	"github.com/siyuan-infoblox/sort-imports/pkg/sorter"
	"github.com/siyuan-infoblox/sort-imports/pkg/utils"
	"github.com/siyuan-infoblox/sort-imports/pkg/version"
)

const (
	UseDescription   = "sort-imports [flags] PATH..."
	ShortDescription = "Sort and group JavaScript and TypeScript imports"
	LongDescription  = `sort-imports sorts the import block at the top of JavaScript and
TypeScript files.

Before sorting, imports of a monorepo package's own name are rewritten into
relative paths when the file lives under <root>/packages/<name>/.

Parser and style are resolved per extension from the engine defaults, the
default-sort-style setting and the nearest package.json "importSort" property
or .importsortrc file. Resolution is cached for the whole run unless
--cache-package-json-config-checks=false.

PATH can be either a single file or a directory. Directories are walked
recursively, skipping node_modules and hidden directories. With --stdin the
document is read from standard input and the result written to standard
output, which is how editors integrate the tool.`
)

var (
	configFile  string
	inPlace     bool
	fromStdin   bool
	filePath    string
	languageID  string
	patterns    []string
	jobs        int
	showVersion bool
	versionStr  string
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Settings file (default is ./.sort-imports.yaml or $HOME/.sort-imports.yaml)")
	flags.StringSlice(config.KeyLanguages, config.DefaultLanguages, "Language ids to sort, matched as substrings")
	flags.String(config.KeyDefaultSortStyle, "", "Style used for every language (e.g. eslint, module)")
	flags.Bool(config.KeyCachePackageJSONConfigChecks, true, "Resolve the sort config once and reuse it for every file")
	flags.Bool(config.KeySuppressWarnings, false, "Do not warn when a file cannot be sorted")
	flags.String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")
	flags.Bool(config.KeyLogJSON, false, "Write logs as JSON")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.Flags().BoolVar(&inPlace, "in-place", false, "Modify files in place instead of printing to stdout")
	rootCmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the document from stdin and write the result to stdout")
	rootCmd.Flags().StringVar(&filePath, "file-path", "", "Path of the document read from stdin")
	rootCmd.Flags().StringVar(&languageID, "language-id", "", "Language id of the document read from stdin (inferred from --file-path when empty)")
	rootCmd.Flags().StringSliceVar(&patterns, "include", nil, fmt.Sprintf("Glob patterns selecting files inside directories (default %q)", utils.DefaultSourcePattern))
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Number of files sorted concurrently")

	rootCmd.AddCommand(watchCmd)
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// Version and stdin modes take no path
	if showVersion || fromStdin {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.MinimumNArgs(1)(cmd, args)
}

// app bundles the collaborators shared by all commands
type app struct {
	settings *config.Config
	log      logger.Logger
	fs       afero.Fs
	pipeline *pipeline.Pipeline
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(settings.LogLevel()),
		Output: cmd.ErrOrStderr(),
		JSON:   settings.LogJSON(),
	})
	fs := afero.NewOsFs()

	return &app{
		settings: settings,
		log:      log,
		fs:       fs,
		pipeline: pipeline.New(pipeline.Config{
			Settings: settings,
			Resolver: sortconfig.NewResolver(fs),
			Sorter:   sorter.New(),
			Cache:    pipeline.NewCache(),
			Warner:   log,
		}),
	}, nil
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		info := version.Get()
		if versionStr != "" {
			info.Version = versionStr
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if fromStdin {
		return a.sortStdin(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	f := formatter.New(formatter.FormatterConfig{
		InPlace:  inPlace,
		Patterns: patterns,
		Jobs:     jobs,
	}, a.pipeline, a.fs, cmd.OutOrStdout(), a.log)
	for _, path := range args {
		if err := f.ProcessPath(cmd.Context(), path); err != nil {
			return err
		}
	}
	return nil
}

// sortStdin sorts one document exchanged over stdin and stdout. The
// original text is echoed when the document cannot be sorted.
func (a *app) sortStdin(in io.Reader, out io.Writer) error {
	if filePath == "" {
		return fmt.Errorf(errors.ErrMsgStdinRequiresFilePath)
	}
	path, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadStdin, err)
	}

	editor := host.NewBufferEditor(pipeline.Document{
		Text:       string(text),
		FilePath:   path,
		LanguageID: languageID,
	}, out)
	if _, err := host.SortCurrentDocument(editor, a.pipeline); err != nil {
		return err
	}
	return editor.Save()
}

func Execute(buildVersion string) error {
	versionStr = buildVersion
	return rootCmd.Execute()
}
