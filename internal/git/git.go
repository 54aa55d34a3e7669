// Package git extracts repository information for scan metadata.
package git

import (
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"golang.org/x/mod/modfile"
)

// RepoInfo contains git repository information for a scanned target
type RepoInfo struct {
	Root      string `json:"root,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	IsDirty   bool   `json:"is_dirty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// Lookup retrieves git information for the given path, searching parent
// directories for the repository root. Returns nil when the path is not
// inside a git repository.
func Lookup(path string) *RepoInfo {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil
	}

	info := &RepoInfo{Root: worktree.Filesystem.Root()}

	head, err := repo.Head()
	if err == nil {
		// Short hash, first 7 characters
		info.Commit = head.Hash().String()[:7]
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Branch = "HEAD" // Detached HEAD
		}
	}

	// Worktree status is the expensive part; errors just leave IsDirty false.
	status, err := worktree.Status()
	if err == nil {
		info.IsDirty = !status.IsClean()
	}

	config, err := repo.Config()
	if err == nil {
		if origin := config.Remotes["origin"]; origin != nil && len(origin.URLs) > 0 {
			info.RemoteURL = sanitizeRemoteURL(origin.URLs[0])
		}
	}

	return info
}

// RepoName derives a display name for the target: the last component of the
// git remote URL, then the last element of a go.mod module path, then the
// directory basename.
func RepoName(path string, info *RepoInfo) string {
	if info != nil && info.RemoteURL != "" {
		url := normalizeRemoteURL(info.RemoteURL)
		if idx := strings.LastIndex(url, "/"); idx >= 0 && idx < len(url)-1 {
			return url[idx+1:]
		}
	}

	if data, err := os.ReadFile(filepath.Join(path, "go.mod")); err == nil {
		if module := modfile.ModulePath(data); module != "" {
			if idx := strings.LastIndex(module, "/"); idx >= 0 && idx < len(module)-1 {
				return module[idx+1:]
			}
			return module
		}
	}

	if info != nil && info.Root != "" {
		return filepath.Base(info.Root)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.Base(abs)
}

// sanitizeRemoteURL strips credentials embedded in http(s) remote URLs so
// they never end up in scan metadata. SSH URLs pass through unchanged.
func sanitizeRemoteURL(url string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, scheme); ok {
			if at := strings.Index(rest, "@"); at >= 0 {
				return scheme + rest[at+1:]
			}
			return url
		}
	}
	return url
}

// normalizeRemoteURL converts the common git URL formats to host/user/repo
func normalizeRemoteURL(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "git@")
	url = strings.TrimPrefix(url, "git://")
	url = strings.TrimSuffix(url, ".git")

	// SSH form host:user/repo
	if strings.Contains(url, ":") {
		url = strings.Replace(url, ":", "/", 1)
	}

	return strings.TrimSuffix(url, "/")
}
