package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManagerLifecycle(t *testing.T) {
	mgr := NewManager(t.TempDir())

	if mgr.GetPath() != "" {
		t.Fatalf("expected empty path before Create, got %q", mgr.GetPath())
	}
	if err := mgr.Create(); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	wsPath := mgr.GetPath()
	if !strings.HasPrefix(filepath.Base(wsPath), "mapidoc-") {
		t.Errorf("expected timestamped directory, got: %s", wsPath)
	}
	if _, err := os.Stat(wsPath); err != nil {
		t.Fatalf("workspace directory missing: %v", err)
	}

	sub, err := mgr.CreateSubdir("repo")
	if err != nil {
		t.Fatalf("CreateSubdir() failed: %v", err)
	}
	if filepath.Dir(sub) != wsPath {
		t.Errorf("subdir %s not inside workspace %s", sub, wsPath)
	}

	if err := mgr.Cleanup(); err != nil {
		t.Fatalf("Cleanup() failed: %v", err)
	}
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after cleanup: %s", wsPath)
	}
	if err := mgr.Cleanup(); err != nil {
		t.Errorf("second Cleanup() failed: %v", err)
	}
}

func TestManagerDistinctWorkspaces(t *testing.T) {
	base := t.TempDir()
	a, b := NewManager(base), NewManager(base)
	if err := a.Create(); err != nil {
		t.Fatal(err)
	}
	if err := b.Create(); err != nil {
		t.Fatal(err)
	}
	if a.GetPath() == b.GetPath() {
		t.Fatalf("workspaces created in the same second share a path: %s", a.GetPath())
	}
}

func TestCreateSubdirBeforeCreate(t *testing.T) {
	if _, err := NewManager(t.TempDir()).CreateSubdir("x"); err == nil {
		t.Fatal("expected error before Create")
	}
}
