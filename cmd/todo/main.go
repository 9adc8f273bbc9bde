// Package main is the entry point for the todo application. With no
// arguments it starts the interactive menu; subcommands work on the task
// file directly.
package main

import (
	"fmt"
	"os"

	"github.com/shikhar1146-netizen/Projects/internal/config"
	"github.com/shikhar1146-netizen/Projects/internal/logging"
	"github.com/shikhar1146-netizen/Projects/internal/storage"
	"github.com/shikhar1146-netizen/Projects/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information - set by the release build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and what is built from them before a
// command runs.
type app struct {
	configPath string
	dataFile   string
	logLevel   string
	strict     bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "todo",
		Short: "A small to-do list manager",
		Long: `todo keeps an ordered list of tasks in a JSON file (todo_data.json by
default). Run it without arguments for the interactive menu, or use the
subcommands below from scripts.

Tasks are addressed by their position in the list, starting at 0.`,
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runMenu,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/todo/config.yaml)")
	flags.StringVarP(&a.dataFile, "file", "f", "", "task file (overrides config and "+config.EnvDataFile+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.strict, "strict", false, "reject empty titles and unknown priorities")

	root.AddCommand(
		a.menuCmd(),
		a.addCmd(),
		a.removeCmd(),
		a.doneCmd(),
		a.listCmd(),
		a.searchCmd(),
		a.sortCmd(),
		a.reportCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.backupCmd(),
		a.restoreCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictValidation = a.strict
	}
	a.cfg = cfg

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	a.logger = logging.New(cmd.ErrOrStderr(), opts)
	if cfg.Path() != "" {
		a.logger.Debug("loaded config", "path", cfg.Path())
	}
	return nil
}

// openStore opens the configured task file.
func (a *app) openStore() (*storage.TaskStore, error) {
	store, err := storage.Open(a.cfg.GetDataFile(),
		storage.WithStrictValidation(a.cfg.StrictValidation),
		storage.WithBackup(a.cfg.Backup.Enabled),
		storage.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	store.SetOnSave(func(sc storage.SaveContext) {
		a.logger.Info("task file updated", "op", sc.Operation, "title", sc.Title, "tasks", sc.Count)
	})
	return store, nil
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	return ui.Run(store, a.cfg, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
}

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (the default)",
		Args:  cobra.NoArgs,
		RunE:  a.runMenu,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "todo version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
