package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alevsk/resultset/internal/config"
	"github.com/alevsk/resultset/internal/jsonutil"
	"github.com/alevsk/resultset/internal/snapshot"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Snapshot.RootDir = t.TempDir()
	cfg.Snapshot.TestsMarker = "tests"
	cfg.Snapshot.TempDirName = ".donotcommit_tmp"
	cfg.Snapshot.DiffCmdLogName = ".donotcommit_tmp_diff_cmd"
	return cfg
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewServer(t *testing.T) {
	s := NewServer(testConfig(t))
	if s == nil {
		t.Fatal("NewServer() returned nil")
	}
	if s.router == nil {
		t.Error("NewServer() did not initialize router")
	}

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	s := NewServer(testConfig(t))
	req, err := http.NewRequest("GET", "/api/v1/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("healthCheck handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	expected := `{"status":"healthy"}` + "\n"
	if rr.Body.String() != expected {
		t.Errorf("healthCheck handler returned unexpected body: got %v want %v",
			rr.Body.String(), expected)
	}
}

func TestListSnapshots(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.Snapshot.RootDir, "app/tests/fixtures/resultsets/unit/foo_test/TestBar.json", "{}")
	s := NewServer(cfg)

	req, _ := http.NewRequest("GET", "/api/v1/snapshots", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var infos []snapshot.Info
	if err := jsonutil.Unmarshal(rr.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(infos))
	}
	if infos[0].Method != "TestBar" {
		t.Errorf("method = %s", infos[0].Method)
	}
}

func TestListSnapshotsEmpty(t *testing.T) {
	s := NewServer(testConfig(t))

	req, _ := http.NewRequest("GET", "/api/v1/snapshots", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rr.Body.String())
	}
}

func TestListPendingAndDiff(t *testing.T) {
	cfg := testConfig(t)
	root := cfg.Snapshot.RootDir
	writeFile(t, root, "app/tests/fixtures/resultsets/unit/foo_test/TestBar.json", "{\n    \"a\": 1\n}\n")
	writeFile(t, root, ".donotcommit_tmp/foo_test-TestBar_ACTUAL.json", "{\n    \"a\": 2\n}\n")
	s := NewServer(cfg)

	req, _ := http.NewRequest("GET", "/api/v1/pending", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var pending []snapshot.Pending
	if err := jsonutil.Unmarshal(rr.Body.Bytes(), &pending); err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending dump, got %d", len(pending))
	}

	req, _ = http.NewRequest("GET", "/api/v1/pending/foo_test-TestBar_ACTUAL.json/diff", nil)
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("diff status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `-    "a": 1`) || !strings.Contains(body, `+    "a": 2`) {
		t.Errorf("unexpected diff body: %s", body)
	}
}

func TestPendingDiffNotFound(t *testing.T) {
	s := NewServer(testConfig(t))

	req, _ := http.NewRequest("GET", "/api/v1/pending/nope_ACTUAL.json/diff", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPendingDiffNoResultset(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.Snapshot.RootDir, ".donotcommit_tmp/gone_test-TestX_ACTUAL.json", "{}\n")
	s := NewServer(cfg)

	req, _ := http.NewRequest("GET", "/api/v1/pending/gone_test-TestX_ACTUAL.json/diff", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}
