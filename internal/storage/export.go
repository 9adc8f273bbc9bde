package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExportJSON returns the tasks in the same layout as the persisted file.
func (s *TaskStore) ExportJSON() ([]byte, error) {
	return encodeTasks(s.tasks)
}

// encodeTasks renders tasks the way the task file stores them: a JSON array
// indented by four spaces, ending in a newline.
func encodeTasks(tasks []Task) ([]byte, error) {
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ExportCSV returns one row per task with its current index.
func (s *TaskStore) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"index", "title", "priority", "deadline", "completed"}); err != nil {
		return nil, err
	}
	for i, task := range s.tasks {
		deadline := ""
		if task.Deadline != nil {
			deadline = task.Deadline.String()
		}
		record := []string{
			strconv.Itoa(i),
			task.Title,
			string(task.Priority),
			deadline,
			strconv.FormatBool(task.Completed),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportMarkdown returns the tasks as a Markdown checklist.
func (s *TaskStore) ExportMarkdown() []byte {
	var b strings.Builder
	b.WriteString("# To-do list\n\n")
	if len(s.tasks) == 0 {
		b.WriteString("_No tasks yet._\n")
		return []byte(b.String())
	}
	for _, task := range s.tasks {
		check := " "
		if task.Completed {
			check = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)", check, task.Title, task.Priority)
		if task.Deadline != nil {
			fmt.Fprintf(&b, " due %s", task.Deadline)
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}
