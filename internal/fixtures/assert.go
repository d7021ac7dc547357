package fixtures

import "os"

// TestingT is the subset of testing.T used by file assertions
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertFileExists fails t when path does not exist
func AssertFileExists(t TestingT, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (%v)", path, err)
	}
}

// AssertFileNotExists fails t when path exists
func AssertFileNotExists(t TestingT, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}
