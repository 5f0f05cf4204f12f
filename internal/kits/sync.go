package kits

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/gitsource"
)

// IsGitSource reports whether source looks like a git remote rather than a
// local directory.
func IsGitSource(source string) bool {
	return strings.HasSuffix(source, ".git") || strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://")
}

// Sync loads the kits published at source. Git sources are cloned or pulled
// into a directory under reposDir first; anything else is read as a local
// directory.
func Sync(ctx context.Context, source, reposDir string, progress io.Writer) ([]domain.StarterKit, error) {
	slog.Info("Syncing starter kit source", "source", source)

	dir, err := CheckoutDir(source, reposDir)
	if err != nil {
		return nil, err
	}
	if IsGitSource(source) {
		if err := os.MkdirAll(filepath.Dir(dir), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create repos directory: %w", err)
		}
		if err := gitsource.Sync(ctx, source, dir, progress); err != nil {
			return nil, err
		}
	}

	kits, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	slog.Info("Starter kit sync complete", "source", source, "path", dir, "kits", len(kits))
	return kits, nil
}

// CheckoutDir is where Sync reads the kits of source from.
func CheckoutDir(source, reposDir string) (string, error) {
	if !IsGitSource(source) {
		return source, nil
	}
	return gitURLToLocalPath(reposDir, source)
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
