package importer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// TaskwarriorImporter handles importing from Taskwarrior JSON exports.
type TaskwarriorImporter struct{}

// taskwarriorTask is the subset of a Taskwarrior record that maps onto ours.
type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
}

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Preview parses a Taskwarrior export, either a JSON array (`task export`)
// or one JSON object per line.
func (t *TaskwarriorImporter) Preview(reader io.Reader) ([]Candidate, error) {
	br := bufio.NewReader(reader)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	dec := json.NewDecoder(br)
	var records []taskwarriorTask
	if first == '[' {
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
	} else {
		for n := 1; ; n++ {
			var tw taskwarriorTask
			err := dec.Decode(&tw)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to decode task %d: %w", n, err)
			}
			records = append(records, tw)
		}
	}

	var tasks []Candidate
	for _, tw := range records {
		if c, ok := candidateFromTaskwarrior(tw); ok {
			tasks = append(tasks, c)
		}
	}
	return tasks, nil
}

// peekNonSpace skips leading whitespace and returns the next byte without
// consuming it.
func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(rune(b[0])) {
			return b[0], nil
		}
		if _, err := r.ReadByte(); err != nil {
			return 0, err
		}
	}
}

func candidateFromTaskwarrior(tw taskwarriorTask) (Candidate, bool) {
	// Deleted tasks stay deleted.
	if tw.Status == "deleted" {
		return Candidate{}, false
	}
	title := strings.TrimSpace(tw.Description)
	if title == "" {
		return Candidate{}, false
	}

	return Candidate{
		Title:    title,
		Priority: mapTaskwarriorPriority(tw.Priority),
		Deadline: parseTaskwarriorDate(tw.Due),
		Done:     tw.Status == "completed",
	}, true
}

// mapTaskwarriorPriority converts Taskwarrior priority to our system.
// Taskwarrior: H = high, M = medium, L = low
func mapTaskwarriorPriority(priority string) storage.Priority {
	switch strings.ToUpper(strings.TrimSpace(priority)) {
	case "H":
		return storage.PriorityHigh
	case "M":
		return storage.PriorityMedium
	case "L":
		return storage.PriorityLow
	default:
		return ""
	}
}

var taskwarriorDateLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTaskwarriorDate parses Taskwarrior's ISO 8601 basic format
// (20140928T211124Z) and keeps the calendar day as written.
func parseTaskwarriorDate(s string) *storage.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range taskwarriorDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := storage.DateOf(t)
			return &d
		}
	}
	return nil
}
