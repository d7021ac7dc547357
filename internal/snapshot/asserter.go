// Package snapshot implements golden-file assertions: a test's actual
// output is serialized to JSON and compared byte-for-byte against a
// checked-in expected file whose path is derived from the calling test.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/alevsk/resultset/internal/config"
	"github.com/alevsk/resultset/internal/fixtures"
	"github.com/alevsk/resultset/internal/logger"
	"github.com/alevsk/resultset/internal/ui"
	"github.com/alevsk/resultset/internal/value"
)

// TestingT is the subset of testing.T the asserter reports through
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// Caller identifies the test invoking an assertion. It is supplied
// explicitly by the test lifecycle instead of being recovered from the
// call stack at runtime.
type Caller struct {
	// File is the absolute path of the test source file
	File string
	// Method is the name of the currently executing test method
	Method string
}

// Asserter compares serialized actual values against stored resultsets
type Asserter struct {
	cfg      *config.Config
	fixtures *fixtures.Fixtures
	out      io.Writer
	lookPath func(string) (string, error)
}

// New creates an Asserter bound to cfg
func New(cfg *config.Config) *Asserter {
	return &Asserter{
		cfg:      cfg,
		fixtures: fixtures.New(cfg),
		out:      os.Stdout,
		lookPath: exec.LookPath,
	}
}

// baseName strips the directory and extension from a caller file
func baseName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResultsetPath returns the expected-snapshot path for caller:
// <fixtures>/resultsets/<sub-dir>/<file-noext>/<method>.json
func (a *Asserter) ResultsetPath(caller Caller) (string, error) {
	dir, err := a.fixtures.ResultsetsDir(caller.File)
	if err != nil {
		return "", err
	}
	subDir, err := a.fixtures.SubDir(caller.File)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, subDir, baseName(caller.File), caller.Method+".json"), nil
}

// TempDir returns the directory receiving actual-value dumps
func (a *Asserter) TempDir() string {
	return filepath.Join(a.cfg.Snapshot.RootDir, a.cfg.Snapshot.TempDirName)
}

// DiffCmdLog returns the path of the diff-command log file
func (a *Asserter) DiffCmdLog() string {
	return filepath.Join(a.cfg.Snapshot.RootDir, a.cfg.Snapshot.DiffCmdLogName)
}

// actualDumpPath returns the diagnostic path an actual value is written to
func (a *Asserter) actualDumpPath(caller Caller) string {
	name := fmt.Sprintf("%s-%s_ACTUAL.json", baseName(caller.File), caller.Method)
	return filepath.Join(a.TempDir(), name)
}

// AssertEqualsResultset serializes actual and compares it against the
// stored resultset for caller. A missing resultset is created empty and
// the assertion fails on that run; the developer populates the file and
// reruns. On mismatch the serialized actual value is dumped under the
// temp dir, a ready-to-run diff command is recorded, and the textual diff
// is printed before the failure is reported to t.
func (a *Asserter) AssertEqualsResultset(t TestingT, caller Caller, actual any) {
	t.Helper()

	path, err := a.ResultsetPath(caller)
	if err != nil {
		t.Errorf("resultset path: %v", err)
		t.FailNow()
	}
	if err := fixtures.EnsureParentDir(path); err != nil {
		t.Errorf("creating resultset dir: %v", err)
		t.FailNow()
	}

	// absent expected file: create it empty, the comparison below then
	// fails and forces the developer to populate the snapshot
	var expected []byte
	exists := true
	expected, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		exists = false
		if werr := os.WriteFile(path, []byte("{}"), 0o644); werr != nil {
			t.Errorf("creating resultset file: %v", werr)
			t.FailNow()
		}
		expected = []byte("{}")
	} else if err != nil {
		t.Errorf("reading resultset file: %v", err)
		t.FailNow()
	}

	actualJSON, err := value.Encode(actual)
	if err != nil {
		t.Errorf("serializing actual value: %v", err)
		t.FailNow()
	}

	if exists && bytes.Equal(expected, actualJSON) {
		return
	}

	var cause error
	if exists {
		cause = fmt.Errorf("actual value does not match resultset %s", path)
	} else {
		cause = fmt.Errorf("resultset %s did not exist and was created empty", path)
	}
	a.reportMismatch(t, caller, path, expected, actualJSON, cause)
}

// reportMismatch side-effects the diagnostic artifacts and fails t
func (a *Asserter) reportMismatch(t TestingT, caller Caller, path string, expected, actualJSON []byte, cause error) {
	t.Helper()

	dump := a.actualDumpPath(caller)
	if err := fixtures.EnsureParentDir(dump); err != nil {
		t.Errorf("creating temp dir: %v", err)
		t.FailNow()
	}
	if err := os.WriteFile(dump, actualJSON, 0o644); err != nil {
		t.Errorf("writing actual dump: %v", err)
		t.FailNow()
	}

	a.recordDiffCmd(path, dump)

	rel := strings.TrimPrefix(caller.File, a.cfg.Snapshot.RootDir)
	fmt.Fprintf(a.out, "\n%s\n", ui.Fail.Render(fmt.Sprintf("=== TEST %s has failed !!", caller.Method)))
	fmt.Fprintf(a.out, "%s\n", ui.Detail.Render("file: "+rel))

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actualJSON)),
		FromFile: path,
		ToFile:   dump,
		Context:  3,
	})
	if err == nil {
		fmt.Fprint(a.out, diff)
	}
	fmt.Fprintf(a.out, "%s\n", ui.Fail.Render(fmt.Sprintf("=== TEST %s", caller.Method)))

	t.Errorf("resultset assertion failed: %v", cause)
	t.FailNow()
}

// recordDiffCmd appends a ready-to-run diff command for the first
// configured tool found on PATH. No tool found means nothing is recorded.
// Parallel test processes append to the same log unguarded; interleaved
// lines are accepted.
func (a *Asserter) recordDiffCmd(expectedPath, actualPath string) {
	var cmd string
	for _, tool := range a.cfg.Snapshot.DiffTools {
		if _, err := a.lookPath(tool); err != nil {
			continue
		}
		switch tool {
		case "meld":
			cmd = fmt.Sprintf("meld %s %s\n", actualPath, expectedPath)
		case "code":
			cmd = fmt.Sprintf("code -d %s %s\n", actualPath, expectedPath)
		default:
			cmd = fmt.Sprintf("%s diff %s %s\n", tool, expectedPath, actualPath)
		}
		break
	}
	if cmd == "" {
		return
	}

	f, err := os.OpenFile(a.DiffCmdLog(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to open diff command log")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(cmd); err != nil {
		logger.Warn().Err(err).Msg("unable to record diff command")
	}
}
