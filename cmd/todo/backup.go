package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/backup"

	"github.com/spf13/cobra"
)

func (a *app) manager() *backup.Manager {
	return backup.NewManager(a.cfg.GetDataFile(), a.cfg.GetBackupDir(), version)
}

func (a *app) backupCmd() *cobra.Command {
	var (
		list  bool
		prune int
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list or prune backups of the task file",
		Long: `Backup copies the task file into a timestamped directory under the backup
directory (default: "backups" next to the task file). After each backup,
older ones beyond backup.keep in the config are removed.`,
		Example: `  todo backup
  todo backup --list
  todo backup --prune 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.manager()
			out := cmd.OutOrStdout()

			switch {
			case list:
				backups, err := m.List()
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Fprintln(out, "No backups available.")
					fmt.Fprintln(out, "Run 'todo backup' to create one.")
					return nil
				}
				fmt.Fprintln(out, "Available backups:")
				for _, b := range backups {
					fmt.Fprintf(out, "  %s  (%s)   Tasks: %d, done: %d\n", b.Name, formatAge(b.CreatedAt), b.Tasks, b.Completed)
				}
				return nil

			case cmd.Flags().Changed("prune"):
				removed, err := m.Prune(prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d old backups.\n", removed)
				return nil
			}

			if !fileExists(a.cfg.GetDataFile()) {
				return fmt.Errorf("nothing to back up: %s does not exist", a.cfg.GetDataFile())
			}
			name, err := m.Create()
			if err != nil {
				return fmt.Errorf("creating backup: %w", err)
			}
			fmt.Fprintf(out, "✓ Backup created: %s\n", name)
			fmt.Fprintf(out, "  Location: %s\n", m.Dir())

			if keep := a.cfg.Backup.Keep; keep > 0 {
				removed, err := m.Prune(keep)
				if err != nil {
					a.logger.Warn("could not prune backups", "err", err)
				} else if removed > 0 {
					a.logger.Info("pruned backups", "removed", removed, "keep", keep)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list available backups")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete all but the N newest backups")
	return cmd
}

func (a *app) restoreCmd() *cobra.Command {
	var latest bool
	cmd := &cobra.Command{
		Use:   "restore [NAME]",
		Short: "Replace the task file with a backup",
		Long: `Restore checks that the backup is a valid task file, backs up the current
file, and then replaces it.`,
		Example: `  todo restore --latest
  todo restore 2025-04-15_093012_481`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.manager()
			out := cmd.OutOrStdout()

			switch {
			case latest && len(args) == 0:
				name, err := m.RestoreLatest()
				if errors.Is(err, backup.ErrNoBackups) {
					return fmt.Errorf("no backups in %s", m.Dir())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Restored from %s\n", name)
			case !latest && len(args) == 1:
				safety, err := m.Restore(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Restored from %s\n", args[0])
				if safety != "" {
					fmt.Fprintf(out, "  Previous file saved as backup %s\n", safety)
				}
			default:
				return errors.New("give a backup name or --latest (see 'todo backup --list')")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "restore the most recent backup")
	return cmd
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day") + " ago"
	default:
		return plural(int(d.Hours()/24/7), "week") + " ago"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
