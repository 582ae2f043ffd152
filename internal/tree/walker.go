// Package tree builds and renders the filtered directory tree.
package tree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/mbisign/repotree/internal/ignore"
	"github.com/mbisign/repotree/internal/utils"
)

const (
	// UnboundedDepth disables the depth limit.
	UnboundedDepth = -1

	warningSkipSubdirFormat = "skipping unreadable directory %s: %v"

	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Entry is one filesystem entry discovered by the walker. Directory entries
// carry their ordered children; the structure is discarded after rendering.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*Entry
}

// Walker enumerates directory entries under a root, applying ignore rules
// and a depth bound. It is strictly read-only.
type Walker struct {
	// Rules decides which relative paths are excluded. A nil Rules keeps
	// every entry.
	Rules *ignore.RuleSet
	// MaxDepth bounds traversal depth counted from the root as 0.
	// UnboundedDepth removes the limit.
	MaxDepth int
	// Logger receives warnings for unreadable subdirectories.
	Logger *zap.Logger
}

// Walk builds the entry tree rooted at rootDirectoryPath. An ignored
// directory is pruned: its contents are never read, so a negation pattern
// cannot re-include anything beneath it. Unreadable subdirectories become
// empty directory entries with a logged warning; only an unreadable root is
// an error. The context is consulted before each directory read, making a
// long traversal interruptible at read boundaries.
func (walker *Walker) Walk(ctx context.Context, rootDirectoryPath string) (*Entry, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootEntry := &Entry{
		Name:  filepath.Base(absoluteRootPath),
		Path:  absoluteRootPath,
		IsDir: true,
	}

	children, walkError := walker.walkDirectory(ctx, absoluteRootPath, absoluteRootPath, 0)
	if walkError != nil {
		return nil, walkError
	}
	rootEntry.Children = children
	return rootEntry, nil
}

// walkDirectory returns the ordered, filtered children of the directory at
// currentDirectoryPath, whose own depth is currentDepth.
func (walker *Walker) walkDirectory(ctx context.Context, currentDirectoryPath string, rootDirectoryPath string, currentDepth int) ([]*Entry, error) {
	if walker.MaxDepth != UnboundedDepth && currentDepth+1 > walker.MaxDepth {
		return nil, nil
	}
	if contextError := ctx.Err(); contextError != nil {
		return nil, contextError
	}

	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var entries []*Entry
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
		if walker.Rules != nil && walker.Rules.Match(relativeChildPath, directoryEntry.IsDir()) {
			continue
		}

		entry := &Entry{
			Name:  directoryEntry.Name(),
			Path:  childPath,
			IsDir: directoryEntry.IsDir(),
		}

		if directoryEntry.IsDir() {
			childEntries, childWalkError := walker.walkDirectory(ctx, childPath, rootDirectoryPath, currentDepth+1)
			if childWalkError != nil {
				if contextError := ctx.Err(); contextError != nil {
					return nil, contextError
				}
				walker.warn(warningSkipSubdirFormat, childPath, childWalkError)
				entry.Children = nil
			} else {
				entry.Children = childEntries
			}
		}
		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries, nil
}

// warn logs a formatted warning when a logger is configured.
func (walker *Walker) warn(format string, arguments ...any) {
	if walker.Logger == nil {
		return
	}
	walker.Logger.Warn(fmt.Sprintf(format, arguments...))
}

// sortEntries orders siblings deterministically: directories before files,
// then byte-wise lexicographic by name.
func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		first, second := entries[firstIndex], entries[secondIndex]
		if first.IsDir != second.IsDir {
			return first.IsDir
		}
		return first.Name < second.Name
	})
}
