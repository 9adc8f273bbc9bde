package reports

import (
	"fmt"
	"strings"
)

// FormatMarkdown formats a summary as a Markdown document.
func FormatMarkdown(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# To-do report for %s\n\n", s.AsOf)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Total:** %d\n", s.Total)
	fmt.Fprintf(&b, "- **Completed:** %d\n", s.CompletedCount)
	fmt.Fprintf(&b, "- **Pending:** %d (%d without deadline)\n", s.PendingCount, s.NoDeadline)
	if s.Total > 0 {
		fmt.Fprintf(&b, "- **Completion rate:** %.0f%%\n", 100*float64(s.CompletedCount)/float64(s.Total))
	}
	b.WriteString("\n")

	if len(s.ByPriority) > 0 {
		b.WriteString("## By priority\n\n")
		b.WriteString("| Priority | Done | Total |\n")
		b.WriteString("|---|---|---|\n")
		for _, pc := range s.ByPriority {
			name := string(pc.Priority)
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(&b, "| %s | %d | %d |\n", name, pc.Completed, pc.Total)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Overdue\n\n")
	if len(s.Overdue) == 0 {
		b.WriteString("_Nothing overdue._\n")
	}
	for _, e := range s.Overdue {
		fmt.Fprintf(&b, "- [%d] %s (due %s, %s late)\n", e.Index, e.Task.Title, e.Task.Deadline, plural(-e.DaysLeft, "day"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Due in the next %s\n\n", plural(s.DueSoonDays, "day"))
	if len(s.DueSoon) == 0 {
		b.WriteString("_Nothing due soon._\n")
	}
	for _, e := range s.DueSoon {
		when := "today"
		if e.DaysLeft > 0 {
			when = "in " + plural(e.DaysLeft, "day")
		}
		fmt.Fprintf(&b, "- [%d] %s (due %s, %s)\n", e.Index, e.Task.Title, e.Task.Deadline, when)
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
