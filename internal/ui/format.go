package ui

import (
	"fmt"
	"io"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// FormatTask renders one list line in the plain form used by the CLI:
//
//	0. Buy milk | Priority: high | ⏰ 2025-03-01 | ❗ ACTIVE
func FormatTask(index int, t storage.Task) string {
	deadline := ""
	if t.Deadline != nil {
		deadline = " | ⏰ " + t.Deadline.String()
	}
	return fmt.Sprintf("%d. %s | Priority: %s%s | %s", index, t.Title, t.Priority, deadline, statusLabel(t))
}

func statusLabel(t storage.Task) string {
	if t.Completed {
		return "✔ DONE"
	}
	return "❗ ACTIVE"
}

// WriteList writes every task with its index, or a notice when there are none.
func WriteList(w io.Writer, tasks []storage.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}
	for i, t := range tasks {
		if _, err := fmt.Fprintln(w, FormatTask(i, t)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSearch writes search matches as a bullet list.
func WriteSearch(w io.Writer, matches []storage.Task) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches found.")
		return err
	}
	for _, t := range matches {
		if _, err := fmt.Fprintf(w, "- %s (Priority: %s)\n", t.Title, t.Priority); err != nil {
			return err
		}
	}
	return nil
}
