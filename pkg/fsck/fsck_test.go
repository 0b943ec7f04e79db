package fsck

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--quiet", dir)
	require.NoError(t, cmd.Run())
	return dir
}

func TestNewDefaultArgs(t *testing.T) {
	assert.Equal(t, DefaultArgs, New(nil).args)
	assert.Equal(t, []string{"--strict"}, New([]string{"--strict"}).args)
}

func TestRunCleanRepository(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)

	result := New(nil).Run(repo)

	assert.True(t, result.Success)
	require.NotNil(t, result.Code)
	assert.Equal(t, 0, *result.Code)
	assert.Empty(t, result.Stderr)
}

func TestRunNonRepository(t *testing.T) {
	requireGit(t)

	result := New(nil).Run(t.TempDir())

	assert.False(t, result.Success)
	require.NotNil(t, result.Code)
	assert.NotZero(t, *result.Code)
	assert.NotEmpty(t, result.Stderr)
}

func TestRunAll(t *testing.T) {
	requireGit(t)
	good := initRepo(t)
	bad := t.TempDir()

	summary := New(nil).RunAll([]string{good, bad})

	assert.Equal(t, 2, summary.Total())
	assert.Equal(t, 1, summary.Failed())
	assert.False(t, summary.AllSuccess())
	assert.Equal(t, good, summary.Results[0].Repo)
	assert.Equal(t, bad, summary.Results[1].Repo)
}

func TestRunAllEmpty(t *testing.T) {
	summary := New(nil).RunAll(nil)

	assert.Zero(t, summary.Total())
	assert.True(t, summary.AllSuccess())
}
