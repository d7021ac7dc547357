// Package fixtures locates test fixture directories relative to a calling
// test file and loads datasets stored under them.
package fixtures

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/resultset/internal/config"
	"github.com/alevsk/resultset/internal/jsonutil"
)

// ErrTestsMarkerNotFound indicates the configured tests-root marker does
// not appear in a caller's path. This is caller misuse, not a runtime
// condition, so it is never retried.
var ErrTestsMarkerNotFound = errors.New("tests marker not found in caller path")

// Fixtures resolves fixture paths for calling test files
type Fixtures struct {
	cfg *config.Config
}

// New creates a Fixtures resolver bound to cfg
func New(cfg *config.Config) *Fixtures {
	return &Fixtures{cfg: cfg}
}

func (f *Fixtures) marker() string {
	if m := f.cfg.Snapshot.TestsMarker; m != "" {
		return m
	}
	return config.DefaultTestsMarker
}

// split separates callerFile into the part before the tests marker and the
// sub-path between the marker and the file itself.
func (f *Fixtures) split(callerFile string) (prefix, subDir string, err error) {
	marker := "/" + f.marker() + "/"
	pos := strings.Index(callerFile, marker)
	if pos <= 0 {
		return "", "", fmt.Errorf("%w: unable to determine root tests path from %s", ErrTestsMarkerNotFound, callerFile)
	}
	prefix = callerFile[:pos]
	subDir = filepath.Dir(callerFile[pos+len(marker):])
	if subDir == "." {
		subDir = ""
	}
	return prefix, subDir, nil
}

// Dir returns the fixtures directory for the caller's test tree
func (f *Fixtures) Dir(callerFile string) (string, error) {
	prefix, _, err := f.split(callerFile)
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, f.marker(), "fixtures"), nil
}

// SubDir returns the path between the tests marker and the caller file,
// excluding the marker segment itself
func (f *Fixtures) SubDir(callerFile string) (string, error) {
	_, subDir, err := f.split(callerFile)
	return subDir, err
}

// ResultsetsDir returns the directory holding expected snapshot files
func (f *Fixtures) ResultsetsDir(callerFile string) (string, error) {
	dir, err := f.Dir(callerFile)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "resultsets"), nil
}

// DatasetPath returns the path of a named dataset in the caller's tree
func (f *Fixtures) DatasetPath(callerFile, name string) (string, error) {
	dir, err := f.Dir(callerFile)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "datasets", name), nil
}

// CommonDatasetPath returns the path of a dataset shared across apps
func (f *Fixtures) CommonDatasetPath(name string) (string, error) {
	if f.cfg.Snapshot.CommonFixturesDir == "" {
		return "", fmt.Errorf("common fixtures dir is not configured")
	}
	return filepath.Join(f.cfg.Snapshot.CommonFixturesDir, "datasets", name), nil
}

// Dataset loads a dataset by name. JSON and YAML files are parsed into a
// generic value, anything else is returned as raw text.
func (f *Fixtures) Dataset(callerFile, name string) (any, error) {
	path, err := f.DatasetPath(callerFile, name)
	if err != nil {
		return nil, err
	}
	return loadDataset(path)
}

// CommonDataset loads a dataset from the shared fixtures tree
func (f *Fixtures) CommonDataset(name string) (any, error) {
	path, err := f.CommonDatasetPath(name)
	if err != nil {
		return nil, err
	}
	return loadDataset(path)
}

func loadDataset(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var v any
		if err := jsonutil.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
		}
		return v, nil
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
		}
		return v, nil
	default:
		return string(raw), nil
	}
}

// SandboxDir returns the sandbox directory for the caller's tree, or the
// path of name inside it when name is non-empty
func (f *Fixtures) SandboxDir(callerFile, name string) (string, error) {
	dir, err := f.Dir(callerFile)
	if err != nil {
		return "", err
	}
	sandbox := filepath.Join(dir, "sandbox")
	if name == "" {
		return sandbox, nil
	}
	return filepath.Join(sandbox, name), nil
}

// CleanSandbox creates the sandbox directory if missing and removes
// everything inside it, keeping the directory itself
func (f *Fixtures) CleanSandbox(callerFile string) error {
	sandbox, err := f.SandboxDir(callerFile, "")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(sandbox, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return emptyDir(sandbox)
}

// emptyDir removes the contents of dir without removing dir
func emptyDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// EnsureParentDir creates the missing parent directories of path. A
// directory created concurrently by another test process is tolerated;
// every other filesystem error propagates.
func EnsureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}
