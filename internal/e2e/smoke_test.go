package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runDeck(t, binaryPath, home, "project", "create", "--name", "Smoke")
	require.NoError(t, err, "stderr: %s", stderr)
	projectID := strings.TrimSpace(stdout)
	require.NotEmpty(t, projectID)

	stdout, stderr, err = runDeck(t, binaryPath, home, "thread", "create", "--project", projectID)
	require.NoError(t, err, "stderr: %s", stderr)
	threadID := strings.TrimSpace(stdout)

	_, stderr, err = runDeck(t, binaryPath, home, "message", "add", threadID, "hello")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runDeck(t, binaryPath, home, "thread", "get", threadID)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "hello")

	_, err = os.Stat(filepath.Join(home, ".deck", "db.toml"))
	require.NoError(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "deck-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/deck")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build deck binary: %s", string(output))
	return binaryPath
}

func runDeck(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"DECK_DATABASE_DRIVER=toml",
		"DECK_SECRETS_BACKEND=file",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
