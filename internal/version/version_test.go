package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	if Version == "" || BuildTime == "" || GitCommit == "" {
		t.Fatal("build metadata should be initialized")
	}

	got := String()
	if !strings.HasPrefix(got, "mapidoc "+Version) {
		t.Fatalf("unexpected version line %q", got)
	}
	if !strings.Contains(got, GitCommit) {
		t.Fatalf("version line %q lacks commit", got)
	}
}
