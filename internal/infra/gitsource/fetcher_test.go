package gitsource

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSubmissionRepo creates a repository with hello.rs on its default branch
// and a "fixed" branch holding a different version.
func setupSubmissionRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available")
	}

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(content, msg string) plumbing.Hash {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.rs"), []byte(content), 0o644))
		_, err := wt.Add("hello.rs")
		require.NoError(t, err)
		hash, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test",
				Email: "test@example.com",
				When:  time.Now(),
			},
		})
		require.NoError(t, err)
		return hash
	}

	head := commit("fn main() {}\n", "Initial commit")
	fixed := commit("fn main() { println!(\"fixed\"); }\n", "Fix")

	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("fixed"), fixed)))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewTagReferenceName("v1"), head)))

	// Move the default branch back to the first commit.
	headRef, err := repo.Head()
	require.NoError(t, err)
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(headRef.Name(), head)))

	return dir
}

func TestFetcher_Fetch(t *testing.T) {
	src := setupSubmissionRepo(t)
	fetcher := NewFetcher(t.TempDir())

	t.Run("default branch", func(t *testing.T) {
		dir, cleanup, err := fetcher.Fetch(context.Background(), src, "")
		require.NoError(t, err)
		defer cleanup()

		content, err := os.ReadFile(filepath.Join(dir, "hello.rs"))
		require.NoError(t, err)
		assert.Equal(t, "fn main() {}\n", string(content))
	})

	t.Run("named branch", func(t *testing.T) {
		dir, cleanup, err := fetcher.Fetch(context.Background(), src, "fixed")
		require.NoError(t, err)
		defer cleanup()

		content, err := os.ReadFile(filepath.Join(dir, "hello.rs"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "fixed")
	})

	t.Run("tag", func(t *testing.T) {
		dir, cleanup, err := fetcher.Fetch(context.Background(), src, "v1")
		require.NoError(t, err)
		defer cleanup()

		assert.FileExists(t, filepath.Join(dir, "hello.rs"))
	})

	t.Run("cleanup removes clone", func(t *testing.T) {
		dir, cleanup, err := fetcher.Fetch(context.Background(), src, "")
		require.NoError(t, err)

		cleanup()
		_, err = os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFetcher_Fetch_Errors(t *testing.T) {
	fetcher := NewFetcher(t.TempDir())

	t.Run("empty url", func(t *testing.T) {
		_, _, err := fetcher.Fetch(context.Background(), "", "")
		assert.Error(t, err)
	})

	t.Run("missing repository", func(t *testing.T) {
		_, _, err := fetcher.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
		assert.Error(t, err)
	})
	t.Run("unknown ref reports branch and tag attempts", func(t *testing.T) {
		src := setupSubmissionRepo(t)
		root := t.TempDir()

		_, _, err := NewFetcher(root).Fetch(context.Background(), src, "no-such-ref")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-ref")
		assert.Contains(t, err.Error(), "as branch: ")
		assert.Contains(t, err.Error(), "as tag: ")

		entries, readErr := os.ReadDir(root)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
