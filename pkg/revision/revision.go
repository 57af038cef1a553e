// Package revision reports which commit of the vendor tree a run used.
package revision

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when the directory is not inside a git work tree
var ErrNotRepository = errors.New("not a git repository")

// Info describes the checked-out state of a vendor tree
type Info struct {
	Commit string // Full commit hash of HEAD
	Branch string // Short branch name, empty when HEAD is detached
	Dirty  bool   // Work tree has uncommitted changes
}

// Short returns the abbreviated commit, suffixed with -dirty if needed
func (i *Info) Short() string {
	s := i.Commit
	if len(s) > 12 {
		s = s[:12]
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

func (i *Info) String() string {
	if i.Branch == "" {
		return i.Short()
	}
	return fmt.Sprintf("%s (%s)", i.Short(), i.Branch)
}

// Head opens the repository containing dir and reads HEAD. It does not
// scan the work tree, so the returned Dirty is always false.
func Head(dir string) (*Info, error) {
	_, info, err := openHead(dir)
	return info, err
}

// Describe is Head plus a work tree status scan to fill in Dirty. The scan
// walks every file of the vendor tree.
func Describe(dir string) (*Info, error) {
	repo, info, err := openHead(dir)
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return info, nil
	}
	status, err := wt.Status()
	if err != nil {
		return info, nil
	}
	info.Dirty = !status.IsClean()

	return info, nil
}

func openHead(dir string) (*git.Repository, *Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil, ErrNotRepository
		}
		return nil, nil, fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, nil, fmt.Errorf("reading HEAD: %w", err)
	}

	info := &Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return repo, info, nil
}
