// Package gitsource fetches submissions from git repositories.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/runoshun/rscheck/internal/domain"
)

// Ensure Fetcher implements domain.SubmissionFetcher.
var _ domain.SubmissionFetcher = (*Fetcher)(nil)

// Fetcher clones submissions into temporary directories.
type Fetcher struct {
	tempRoot string // Parent of clone directories; empty uses os.TempDir
}

// NewFetcher creates a new Fetcher.
func NewFetcher(tempRoot string) *Fetcher {
	return &Fetcher{tempRoot: tempRoot}
}

// Fetch makes a shallow clone of url. ref selects a branch or tag; empty
// means the remote HEAD.
func (f *Fetcher) Fetch(ctx context.Context, url, ref string) (string, func(), error) {
	if url == "" {
		return "", nil, errors.New("repository url is empty")
	}

	dir, err := os.MkdirTemp(f.tempRoot, "rscheck-submission-*")
	if err != nil {
		return "", nil, fmt.Errorf("create clone directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	if err := clone(ctx, dir, url, ref); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

func clone(ctx context.Context, dir, url, ref string) error {
	opts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if ref == "" {
		if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		return nil
	}

	opts.SingleBranch = true
	opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	_, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err == nil {
		return nil
	}

	// Not a branch; retry as a tag in a clean directory.
	if rmErr := resetDir(dir); rmErr != nil {
		return rmErr
	}
	opts.ReferenceName = plumbing.NewTagReferenceName(ref)
	if _, tagErr := git.PlainCloneContext(ctx, dir, false, opts); tagErr != nil {
		return fmt.Errorf("clone %s at %s: as branch: %w; as tag: %w", url, ref, err, tagErr)
	}
	return nil
}

func resetDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reset clone directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("reset clone directory: %w", err)
		}
	}
	return nil
}
