//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	// sharedAtlasPath holds the path to a shared atlas binary built once for all tests.
	sharedAtlasPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getAtlasBinary returns the path to the atlas binary, building it once if needed.
func getAtlasBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "atlas-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		atlasPath := filepath.Join(tempDir, "atlas")
		buildCmd := exec.Command("go", "build", "-o", atlasPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build atlas: %v\n%s", err, out))
		}

		sharedAtlasPath = atlasPath
	})

	return sharedAtlasPath
}

// runAtlas runs the binary with args and returns its combined output.
func runAtlas(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getAtlasBinary(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("atlas %s failed:\n%s", strings.Join(args, " "), out)
	}
	return string(out), err
}

// sampleDataset is a sprint with mixed signals used by several tests.
const sampleDataset = `
votes:
  - confidence_level: 4
  - confidence_level: 3
  - confidence_level: 4
metrics:
  - metric_type: velocity
    value: 40
    recorded_at: 2026-05-01T10:00:00Z
  - metric_type: velocity
    value: 35
    recorded_at: 2026-05-08T10:00:00Z
  - metric_type: throughput
    value: 80
objectives:
  - title: Ship refunds
    status: completed
  - title: Migrate ledger
    status: at_risk
`

// writeDataset writes sampleDataset into a temp file.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprint.yaml")
	if err := os.WriteFile(path, []byte(sampleDataset), 0o600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}
