package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func gitInit(t *testing.T, dir string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
}

func TestCheckOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	if IsGitRepo(dir) {
		t.Skip("temp dir is inside a git work tree")
	}

	status, err := Check(filepath.Join(dir, "v.vault"))
	require.NoError(t, err)
	require.False(t, status.IsRepo)
	require.Empty(t, status.Warnings())
}

func TestCheckIgnoredAndUnignored(t *testing.T) {
	dir := t.TempDir()
	gitInit(t, dir)

	vaultPath := filepath.Join(dir, "v.vault")
	dbPath := vaultPath + ".db"
	require.NoError(t, os.WriteFile(vaultPath, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.db\n"), 0600))

	status, err := Check(vaultPath, dbPath)
	require.NoError(t, err)
	require.True(t, status.IsRepo)
	require.Len(t, status.Files, 2)

	require.Equal(t, "v.vault", status.Files[0].Path)
	require.False(t, status.Files[0].Ignored)
	require.False(t, status.Files[0].Tracked)
	require.True(t, status.Files[1].Ignored)

	warnings := status.Warnings()
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "v.vault")
}

func TestCheckNoPaths(t *testing.T) {
	status, err := Check()
	require.NoError(t, err)
	require.False(t, status.IsRepo)
}
