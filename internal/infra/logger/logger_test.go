package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToWorkspaceLog(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	want := filepath.Join(root, ".fnkit", "logs", "fnkit.log")
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}
	L().Debug("case.done", "case", "s-0001")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if Path() != "" {
		t.Fatalf("expected logger reset after cleanup, path=%q", Path())
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, s := range []string{"logger.initialized", "case.done", "s-0001"} {
		if !strings.Contains(string(b), s) {
			t.Fatalf("expected %q in log, got:\n%s", s, b)
		}
	}
}

func TestSetup_FailsOnUnwritableRoot(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, ".fnkit")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Setup(Config{Root: root}); err == nil {
		t.Fatalf("expected error when .fnkit is a file")
	}
	if Path() != "" {
		t.Fatalf("expected discard logger after failure, path=%q", Path())
	}
	L().Info("still safe")
}

func TestSetup_DebugLevel(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	L().Debug("hidden.event")
	L().Info("shown.event")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, ".fnkit", "logs", "fnkit.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(b), "hidden.event") {
		t.Fatalf("expected debug records dropped without Debug, got:\n%s", b)
	}
	if !strings.Contains(string(b), "shown.event") {
		t.Fatalf("expected info record, got:\n%s", b)
	}
}
