package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dontpanic.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		expectedAll = append(expectedAll, fmt.Sprintf("Line %d", i))
	}
	logPath := writeLog(t, expectedAll)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTail_Filter(t *testing.T) {
	logPath := writeLog(t, []string{
		`time=10:00 level=INFO msg="outbox send success"`,
		`time=10:01 level=ERROR msg="key not recognized" key=99`,
		`time=10:02 level=ERROR msg="outbox busy, weather request skipped"`,
		`time=10:15 level=INFO msg="outbox send success"`,
	})

	got, err := Tail(logPath, 0, "  error ")
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 2 || !strings.Contains(got[0], "key not recognized") {
		t.Fatalf("Tail(error) = %v, want the two error lines", got)
	}

	got, err = Tail(logPath, 1, "OUTBOX")
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 1 || !strings.Contains(got[0], "10:15") {
		t.Fatalf("Tail(outbox, 1) = %v, want the last outbox line", got)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}
