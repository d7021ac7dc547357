package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const actualSuffix = "_ACTUAL.json"

// Pending is a diagnostic actual-value dump awaiting review
type Pending struct {
	// Name is the dump file name under the temp dir
	Name string
	// File is the caller file segment the dump was produced for
	File string
	// Method is the test method the dump was produced for
	Method string
	// ActualPath is the absolute path of the dump
	ActualPath string
	// ExpectedPath is the matching resultset, empty when none was found
	ExpectedPath string
}

// Info describes one stored resultset snapshot
type Info struct {
	// Path is relative to the configured root
	Path string
	// File is the caller file segment owning the snapshot
	File string
	// Method is the test method the snapshot belongs to
	Method  string
	Size    int64
	ModTime time.Time
}

// Pending lists the actual-value dumps currently under the temp dir,
// each matched against its stored resultset when one can be located.
func (a *Asserter) Pending() ([]Pending, error) {
	entries, err := os.ReadDir(a.TempDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading temp dir: %w", err)
	}

	var pending []Pending
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), actualSuffix) {
			continue
		}
		file, method, ok := parseDumpName(entry.Name())
		if !ok {
			continue
		}
		p := Pending{
			Name:       entry.Name(),
			File:       file,
			Method:     method,
			ActualPath: filepath.Join(a.TempDir(), entry.Name()),
		}
		if expected, err := a.findResultset(file, method); err == nil {
			p.ExpectedPath = expected
		}
		pending = append(pending, p)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })
	return pending, nil
}

// parseDumpName splits "<file>-<method>_ACTUAL.json". The method never
// contains a dash, the file segment may, so the split is on the last one.
func parseDumpName(name string) (file, method string, ok bool) {
	trimmed := strings.TrimSuffix(name, actualSuffix)
	idx := strings.LastIndex(trimmed, "-")
	if idx <= 0 || idx == len(trimmed)-1 {
		return "", "", false
	}
	return trimmed[:idx], trimmed[idx+1:], true
}

// findResultset walks the root for a resultsets tree containing
// <file>/<method>.json
func (a *Asserter) findResultset(file, method string) (string, error) {
	var found string
	target := method + ".json"
	err := filepath.WalkDir(a.cfg.Snapshot.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			// hidden trees (including the temp dir) hold no resultsets
			if name := d.Name(); strings.HasPrefix(name, ".") && path != a.cfg.Snapshot.RootDir {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != target {
			return nil
		}
		dir := filepath.Dir(path)
		if filepath.Base(dir) != file {
			return nil
		}
		if !strings.Contains(path, string(filepath.Separator)+"resultsets"+string(filepath.Separator)) {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no resultset found for %s/%s", file, method)
	}
	return found, nil
}

// Approve copies a pending dump over its stored resultset and removes the
// dump. The dump must have been matched to a resultset.
func (a *Asserter) Approve(p Pending) error {
	if p.ExpectedPath == "" {
		return fmt.Errorf("no resultset matched for %s", p.Name)
	}
	data, err := os.ReadFile(p.ActualPath)
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}
	if err := os.WriteFile(p.ExpectedPath, data, 0o644); err != nil {
		return fmt.Errorf("updating resultset: %w", err)
	}
	return os.Remove(p.ActualPath)
}

// Clean removes the temp dir and the diff-command log
func (a *Asserter) Clean() error {
	if err := os.RemoveAll(a.TempDir()); err != nil {
		return fmt.Errorf("removing temp dir: %w", err)
	}
	if err := os.Remove(a.DiffCmdLog()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing diff command log: %w", err)
	}
	return nil
}

// Snapshots walks the root and lists every stored resultset
func (a *Asserter) Snapshots() ([]Info, error) {
	root := a.cfg.Snapshot.RootDir
	marker := string(filepath.Separator) + "resultsets" + string(filepath.Separator)

	var infos []Info
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".json") || !strings.Contains(path, marker) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		infos = append(infos, Info{
			Path:    rel,
			File:    filepath.Base(filepath.Dir(path)),
			Method:  strings.TrimSuffix(d.Name(), ".json"),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}
