package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/fsutil"
	"github.com/shikhar1146-netizen/Projects/internal/reports"
	"github.com/shikhar1146-netizen/Projects/internal/storage"

	"github.com/spf13/cobra"
)

func (a *app) reportCmd() *cobra.Command {
	var (
		format  string
		asOf    string
		dueSoon int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize progress, overdue and upcoming tasks",
		Example: `  todo report
  todo report --date 2025-03-01 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := storage.DateOf(time.Now())
			if asOf != "" {
				d, err := storage.ParseDate(asOf)
				if err != nil {
					return err
				}
				day = d
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			gen := reports.NewGenerator(store)
			gen.SetDueSoonDays(dueSoon)
			summary := gen.Generate(day)

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "md", "markdown":
				fmt.Fprint(out, reports.FormatMarkdown(summary))
			case "json":
				data, err := reports.FormatJSON(summary)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			default:
				return fmt.Errorf("unknown report format %q (use md or json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "output format: md or json")
	cmd.Flags().StringVar(&asOf, "date", "", "report as of this day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&dueSoon, "due-soon", reports.DefaultDueSoonDays, "days ahead that count as due soon")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as JSON, CSV or Markdown",
		Example: `  todo export --format csv -o tasks.csv
  todo export --format md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = store.ExportJSON()
			case "csv":
				data, err = store.ExportCSV()
			case "md", "markdown":
				data = store.ExportMarkdown()
			default:
				return fmt.Errorf("unknown export format %q (use json, csv or md)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := fsutil.WriteFileAtomic(output, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.logger.Info("exported tasks", "path", output, "format", format, "tasks", store.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", store.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, csv or md")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
