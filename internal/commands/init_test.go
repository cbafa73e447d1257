package commands_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "household-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "household")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/household")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runHousehold returns stdout. A failed run folds stderr into the error.
func runHousehold(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

func initHousehold(t *testing.T) (dir, cfg string) {
	t.Helper()
	dir = t.TempDir()
	_, err := runHousehold(t, "init", dir, "--name", "Test House")
	require.NoError(t, err)
	return dir, filepath.Join(dir, "household.yaml")
}

func TestInit_CreatesStructure(t *testing.T) {
	dir, _ := initHousehold(t)

	for _, d := range []string{"data", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err := os.Stat(filepath.Join(dir, "data", "household.db"))
	require.NoError(t, err, "database should exist")
}

func TestInit_Config(t *testing.T) {
	_, cfg := initHousehold(t)

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test House")
	assert.Contains(t, contents, "driver: sqlite")
}

func TestInit_Gitignore(t *testing.T) {
	dir, _ := initHousehold(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"data/", ".env"} {
		assert.Contains(t, string(data), pattern)
	}
}

func TestInit_SeedsCategories(t *testing.T) {
	_, cfg := initHousehold(t)

	out, err := runHousehold(t, "--config", cfg, "category", "list")
	require.NoError(t, err)
	for _, name := range []string{"Groceries", "Salary", "Gifts"} {
		assert.Contains(t, out, name)
	}
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runHousehold(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_Twice(t *testing.T) {
	dir, _ := initHousehold(t)
	_, err := runHousehold(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMigrate_ReportsVersion(t *testing.T) {
	_, cfg := initHousehold(t)

	out, err := runHousehold(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "at version 2")
}

func TestVersion(t *testing.T) {
	out, err := runHousehold(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "household version dev")
}
