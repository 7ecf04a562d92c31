// Package gitinfo resolves the version-control state of the content
// directory. Everything here is best effort: a site that is not kept in git
// builds exactly the same, just without a commit stamp on its report.
package gitinfo

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// HeadCommit returns the abbreviated HEAD commit of the repository that
// contains dir, walking upwards until a .git directory is found.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String()[:12], nil
}
