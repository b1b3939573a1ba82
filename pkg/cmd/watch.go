package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/sort-imports/pkg/config"
	"github.com/siyuan-infoblox/sort-imports/pkg/errors"
	"github.com/siyuan-infoblox/sort-imports/pkg/host"
	"github.com/siyuan-infoblox/sort-imports/pkg/logger"
)

var readCommands bool

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Sort imports of files as they are saved",
	Long: `watch sorts the imports of JavaScript and TypeScript files below DIR
(the working directory by default) whenever they are saved.

The sorted text is written back without being sorted again. Changes to the
settings file apply to the next save.

With --commands, editor commands are read from stdin, one per line:

  sort PATH                   sort the file now
  save-without-sorting PATH   save the file without sorting it on this save`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runWatch,
	SilenceUsage: true,
}

func init() {
	watchCmd.Flags().Bool(config.KeySortOnSave, true, "Sort files when they are saved")
	watchCmd.Flags().BoolVar(&readCommands, "commands", false, "Read editor commands from stdin")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.settings.Watch(ctx, func() {
		a.log.Info(errors.InfoMsgSettingsChanged, "file", a.settings.ConfigFileUsed())
	}); err != nil {
		return err
	}

	onSave := host.NewOnSave(a.pipeline, a.settings)
	watcher := host.NewWatcher(a.fs, onSave, a.log, nil)
	if readCommands {
		go submitCommands(ctx, cmd.InOrStdin(), watcher, a.log)
	}
	return watcher.Run(ctx, root)
}

// submitCommands forwards the commands read from in until it is exhausted
func submitCommands(ctx context.Context, in io.Reader, watcher *host.Watcher, log logger.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		command, err := parseCommand(line)
		if err != nil {
			log.Error(err.Error(), "line", line)
			continue
		}
		if err := watcher.Submit(ctx, command); err != nil {
			return
		}
	}
}

// parseCommand splits "<command> <path>"; the path may contain spaces
func parseCommand(line string) (host.Command, error) {
	name, path, ok := strings.Cut(strings.TrimSpace(line), " ")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return host.Command{}, fmt.Errorf(errors.ErrMsgMalformedCommand)
	}
	switch name {
	case host.CommandSort, host.CommandSaveWithoutSorting:
		return host.Command{Name: name, Path: path}, nil
	}
	return host.Command{}, fmt.Errorf("%s %q", errors.ErrMsgUnknownCommand, name)
}
