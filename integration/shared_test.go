//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedDeedscorePath holds the path to a shared deedscore binary built once for all tests.
	sharedDeedscorePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDeedscoreBinary returns the path to the deedscore binary, building it once if needed.
func getDeedscoreBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "deedscore-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		deedscorePath := filepath.Join(tempDir, "deedscore")
		buildCmd := exec.Command("go", "build", "-o", deedscorePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build deedscore: %v", err))
		}

		sharedDeedscorePath = deedscorePath
	})

	return sharedDeedscorePath
}

// writePropertyFixture writes a JSON input file with a few scoreable
// properties and returns its path. The file lives under the test's
// temp dir so it is cleaned up automatically.
func writePropertyFixture(t *testing.T) string {
	t.Helper()

	records := `[
  {
    "property": {
      "id": "FL-2026-0001",
      "parcel_id": "12-34-56-0001",
      "state": "FL",
      "county": "Lake",
      "assessed_value": 95000,
      "minimum_bid": 6200,
      "total_due": 5800,
      "acreage": 0.28,
      "year_built": 1994,
      "land_use": "residential",
      "sale_type": "deed",
      "road_frontage": true
    }
  },
  {
    "property": {
      "id": "FL-2026-0002",
      "parcel_id": "12-34-56-0002",
      "state": "FL",
      "county": "Lake",
      "assessed_value": 41000,
      "minimum_bid": 9800,
      "acreage": 0.05,
      "land_use": "vacant"
    }
  },
  {
    "property": {
      "id": "FL-2026-0003",
      "parcel_id": "12-34-56-0003",
      "state": "FL",
      "county": "Polk",
      "assessed_value": 120000,
      "minimum_bid": 15000,
      "land_use": "cemetery"
    }
  }
]`

	path := filepath.Join(t.TempDir(), "properties.json")
	if err := os.WriteFile(path, []byte(records), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
