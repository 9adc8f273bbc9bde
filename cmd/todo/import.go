package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shikhar1146-netizen/Projects/internal/importer"

	"github.com/spf13/cobra"
)

// previewLimit caps how many tasks a dry run lists.
const previewLimit = 20

func (a *app) importCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FORMAT FILE",
		Short: "Import tasks from Taskwarrior or Todoist",
		Long: `Import appends tasks from another to-do tool to the end of the list.

FORMATS:
  taskwarrior  JSON from "task export" (array or one object per line).
               priority H/M/L maps to high/medium/low, due to the deadline,
               completed tasks are marked done, deleted tasks are skipped.
  todoist      CSV template export. PRIORITY 1,2 -> high, 3 -> medium,
               4 -> low; DATE becomes the deadline when it is a fixed day.`,
		Example: `  task export > tasks.json && todo import taskwarrior tasks.json
  todo import --dry-run todoist Inbox.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(args[0])
			imp := importer.Get(format)
			if imp == nil {
				return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(importer.SupportedFormats(), ", "))
			}

			file, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			out := cmd.OutOrStdout()
			if dryRun {
				tasks, err := imp.Preview(file)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", args[1], err)
				}
				if len(tasks) == 0 {
					fmt.Fprintln(out, "No tasks found to import.")
					return nil
				}
				fmt.Fprintf(out, "Preview: %d tasks to import\n", len(tasks))
				for i, t := range tasks {
					if i == previewLimit {
						fmt.Fprintf(out, "  ... and %d more\n", len(tasks)-previewLimit)
						break
					}
					fmt.Fprintf(out, "  %s%s\n", t.Title, candidateDetails(t))
				}
				fmt.Fprintln(out, "Run without --dry-run to import.")
				return nil
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			result, err := importer.Import(imp, file, store)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[1], err)
			}
			fmt.Fprintf(out, "Imported %d tasks from %s\n", result.Imported, imp.Name())
			for _, e := range result.Errors {
				a.logger.Warn("import problem", "err", e)
			}
			if len(result.Errors) > 0 {
				fmt.Fprintf(out, "%d tasks could not be imported\n", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview without changing the task file")
	return cmd
}

func candidateDetails(c importer.Candidate) string {
	var details []string
	if c.Priority != "" {
		details = append(details, string(c.Priority))
	}
	if c.Deadline != nil {
		details = append(details, c.Deadline.String())
	}
	if c.Done {
		details = append(details, "done")
	}
	if len(details) == 0 {
		return ""
	}
	return " (" + strings.Join(details, ", ") + ")"
}
