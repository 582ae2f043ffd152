// Package project locates the project root directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mbisign/repotree/internal/utils"
)

// ErrRootNotFound indicates that no root marker exists between the starting
// directory and the filesystem root. Callers are expected to fall back to
// the starting directory.
var ErrRootNotFound = errors.New("project root not found")

// rootMarkerNames lists filesystem entries whose presence identifies the
// project root. The .git entry may be a directory or, in worktrees, a file.
var rootMarkerNames = []string{
	utils.GitDirectoryName,
	utils.GitIgnoreFileName,
	utils.IgnoreFileName,
}

// Locate walks upward from startDirectory through its parents and returns
// the first directory containing a root marker. It returns ErrRootNotFound
// when the filesystem root is reached without finding one. Locate performs
// read-only existence checks and never modifies the filesystem.
func Locate(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf("getting absolute path for %s: %w", startDirectory, absolutePathError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		if directoryHasRootMarker(currentDirectory) {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf("%w in or above %s", ErrRootNotFound, absoluteStartDirectory)
}

// directoryHasRootMarker reports whether the directory contains any
// recognized root marker.
func directoryHasRootMarker(directoryPath string) bool {
	for _, markerName := range rootMarkerNames {
		markerPath := filepath.Join(directoryPath, markerName)
		if _, statError := os.Stat(markerPath); statError == nil {
			return true
		}
	}
	return false
}
