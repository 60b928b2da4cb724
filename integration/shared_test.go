//go:build basic || database

package integration

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a shared dealsense binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const (
	dormantLeadsFixture = `leads:
  - id: lead-cool
    signals:
      last_engagement: "2024-05-28T12:00:00Z"
  - id: lead-dormant
    signals:
      last_engagement: "2024-05-22T12:00:00Z"
      objection_history: ["not the right time"]
  - id: lead-fossil
    signals:
      last_engagement: "2023-11-14T12:00:00Z"
`
	inboundLeadsFixture = `[
  {
    "id": "in-hot",
    "source": "referral",
    "identity": {"email": "ana@acme.io", "phone": "+1-555-0100", "company_name": "Acme"},
    "website": {"pricing_visible": true, "company_size": 40},
    "behavior": {"high_intent_activities": ["pricing_page_view", "demo_request", "trial_signup"]}
  },
  {"id": "in-cold", "source": "cold_list", "identity": {"email": "x@gmail.com"}}
]`
	lostDealsFixture = `{"deals": [
  {"id": "deal-budget", "original_value": 100000, "lost_at": "2024-05-22T12:00:00Z",
   "loss_reason": "budget cut for the year", "trust_level": "high", "champion_identified": true},
  {"id": "deal-competitor", "original_value": 40000, "lost_at": "2024-03-01T00:00:00Z",
   "competitor_name": "Globex", "trust_level": "medium"}
]}`

	// fixedNow pins the engine clock so runs are reproducible.
	fixedNow = "2024-06-01T12:00:00Z"
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

// getDealsenseBinary returns the path to the dealsense binary, building it once if needed.
func getDealsenseBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "dealsense-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "dealsense")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build dealsense: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeFixtures writes the input documents into dir and returns their paths.
func writeFixtures(t *testing.T, dir string) (dormant, inbound, lost string) {
	t.Helper()
	dormant = filepath.Join(dir, "dormant.yaml")
	inbound = filepath.Join(dir, "inbound.json")
	lost = filepath.Join(dir, "lost.json")
	require.NoError(t, os.WriteFile(dormant, []byte(dormantLeadsFixture), 0o644))
	require.NoError(t, os.WriteFile(inbound, []byte(inboundLeadsFixture), 0o644))
	require.NoError(t, os.WriteFile(lost, []byte(lostDealsFixture), 0o644))
	return dormant, inbound, lost
}

// runDealsense runs the CLI from dir and returns stdout.
func runDealsense(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getDealsenseBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	stdout, err := cmd.Output()
	if err != nil {
		var stderr []byte
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = exitErr.Stderr
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout, stderr)
	}
	return string(stdout), err
}
