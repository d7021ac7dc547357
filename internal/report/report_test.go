package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alevsk/resultset/internal/snapshot"
)

func TestWriteSnapshots(t *testing.T) {
	var buf bytes.Buffer
	WriteSnapshots(&buf, []snapshot.Info{
		{
			Path:    "app/tests/fixtures/resultsets/unit/foo_test/TestBar.json",
			File:    "foo_test",
			Method:  "TestBar",
			Size:    42,
			ModTime: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	for _, want := range []string{"RESULTSETS", "TestBar", "foo_test", "42 B", "2024-05-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWritePending(t *testing.T) {
	var buf bytes.Buffer
	WritePending(&buf, []snapshot.Pending{
		{
			Name:   "foo_test-TestBar_ACTUAL.json",
			File:   "foo_test",
			Method: "TestBar",
		},
	})

	out := buf.String()
	if !strings.Contains(out, "PENDING DUMPS") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Errorf("unmatched dump should render (none):\n%s", out)
	}
}
