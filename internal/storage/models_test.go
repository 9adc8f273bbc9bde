package storage

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"", PriorityMedium},
		{"  ", PriorityMedium},
		{"LOW", PriorityLow},
		{"Medium", PriorityMedium},
		{" high ", PriorityHigh},
		{"Someday", Priority("someday")},
	}
	for _, tt := range tests {
		if got := NormalizePriority(tt.in); got != tt.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityKnown(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Known() {
			t.Errorf("%q.Known() = false", p)
		}
	}
	if Priority("urgent").Known() {
		t.Error(`"urgent".Known() = true`)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-04-15", Date{2025, time.April, 15}, false},
		{" 2024-02-29 ", Date{2024, time.February, 29}, false},
		{"2025-02-29", Date{}, true},
		{"2025-4-15", Date{}, true},
		{"15/04/2025", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("   ")
	if err != nil || d != nil {
		t.Errorf("ParseOptionalDate(blank) = %v, %v; want nil, nil", d, err)
	}
	d, err = ParseOptionalDate("2025-01-10")
	if err != nil || d == nil || d.String() != "2025-01-10" {
		t.Errorf("ParseOptionalDate(2025-01-10) = %v, %v", d, err)
	}
	if _, err := ParseOptionalDate("soon"); err == nil {
		t.Error("ParseOptionalDate(soon) expected error")
	}
}

func TestDateOrdering(t *testing.T) {
	a := Date{2025, time.January, 10}
	b := Date{2025, time.March, 1}

	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before() ordering is wrong")
	}
	if got := a.DaysUntil(b); got != 50 {
		t.Errorf("DaysUntil() = %d, want 50", got)
	}
	if got := b.DaysUntil(a); got != -50 {
		t.Errorf("DaysUntil() = %d, want -50", got)
	}
}

func TestTaskJSON_NullDeadline(t *testing.T) {
	data, err := json.Marshal(Task{Title: "Buy milk", Priority: PriorityLow})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"Buy milk","priority":"low","deadline":null,"completed":false}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
