package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
	"github.com/shikhar1146-netizen/Projects/internal/ui"

	"github.com/spf13/cobra"
)

// parseIndex reads a task position from the command line.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q: must be a whole number", arg)
	}
	return i, nil
}

// indexFlagError explains how to pass a negative index, which pflag would
// otherwise read as a shorthand flag.
func indexFlagError(cmd *cobra.Command, err error) error {
	if msg := err.Error(); strings.HasPrefix(msg, "unknown shorthand flag") && strings.ContainsAny(msg, "0123456789") {
		return fmt.Errorf("%w (put negative task numbers after --, e.g. %q)", err, cmd.Name()+" -- -1")
	}
	return err
}

func (a *app) addCmd() *cobra.Command {
	var (
		priority string
		deadline string
	)
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Example: `  todo add "Buy milk"
  todo add "File taxes" -p high -d 2025-04-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := storage.ParseOptionalDate(deadline)
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Add(args[0], storage.Priority(priority), due); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task added.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "priority: low, medium or high")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "deadline as YYYY-MM-DD")
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove INDEX",
		Aliases: []string{"rm"},
		Short:   "Remove the task at INDEX",
		Example: "  todo remove 0\n  todo remove -- -1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.atIndex(cmd, args[0], func(store *storage.TaskStore, i int, t storage.Task) error {
				if err := store.Remove(i); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q.\n", t.Title)
				return nil
			})
		},
	}
	cmd.SetFlagErrorFunc(indexFlagError)
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "done INDEX",
		Short:   "Mark the task at INDEX as done",
		Example: "  todo done 0\n  todo done -- -1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.atIndex(cmd, args[0], func(store *storage.TaskStore, i int, t storage.Task) error {
				if err := store.MarkDone(i); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as done.\n", t.Title)
				return nil
			})
		},
	}
	cmd.SetFlagErrorFunc(indexFlagError)
	return cmd
}

// atIndex opens the store and runs fn on the task at arg. A position past
// the end of the list is reported and otherwise ignored.
func (a *app) atIndex(cmd *cobra.Command, arg string, fn func(*storage.TaskStore, int, storage.Task) error) error {
	i, err := parseIndex(arg)
	if err != nil {
		return err
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	t, ok := store.Task(i)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No task at %d.\n", i)
		return nil
	}
	return fn(store, i, t)
}

func (a *app) listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "Show all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if asJSON {
				data, err := store.ExportJSON()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return ui.WriteList(cmd.OutOrStdout(), store.Tasks())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find tasks whose title contains KEYWORD, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			matches := store.Search(args[0])
			if asJSON {
				data, err := json.MarshalIndent(matches, "", "    ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return ui.WriteSearch(cmd.OutOrStdout(), matches)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) sortCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Show tasks ordered by deadline",
		Long: `Sort orders tasks by deadline, earliest first, with undated tasks last.

The new order is only written to the task file with --save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			store.SortByDeadline()
			if save {
				if err := store.Save(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if err := ui.WriteList(out, store.Tasks()); err != nil {
				return err
			}
			if save {
				fmt.Fprintln(out, "Tasks sorted by deadline.")
			} else {
				fmt.Fprintln(out, "Tasks sorted by deadline (not saved; use --save to keep this order).")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the sorted order to the task file")
	return cmd
}
