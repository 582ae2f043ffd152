// Package hook installs the git pre-commit hook that regenerates the tree document.
package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbisign/repotree/internal/utils"
)

const (
	// hooksDirectoryName is the hooks directory inside the git metadata directory.
	hooksDirectoryName = "hooks"
	// preCommitHookName is the hook file written by the installer.
	preCommitHookName = "pre-commit"

	// beginMarker and endMarker delimit the installer-managed block inside
	// the hook file, so re-running installation replaces the block instead
	// of duplicating it.
	beginMarker = "# repotree hook begin"
	endMarker   = "# repotree hook end"

	shebangLine = "#!/bin/sh"

	// hookBlockFormat is the managed hook block. Git invokes hooks through
	// sh on every platform, so the same script body works everywhere; the
	// file is always written with LF line endings.
	hookBlockFormat = beginMarker + "\n" +
		"echo '[repotree] updating project structure document'\n" +
		"repotree generate\n" +
		"git add %s\n" +
		endMarker + "\n"

	errorNotARepositoryFormat = "no %s/%s directory under %s: not an initialized git repository"
	errorReadHookFormat       = "reading existing hook %s: %w"
	errorWriteHookFormat      = "writing hook %s: %w"
	errorChmodHookFormat      = "marking hook %s executable: %w"
)

// Install writes an idempotent pre-commit hook under rootPath's git hooks
// directory. The hook regenerates the tree document and stages
// outputRelativePath before the commit completes. It returns the hook file
// path. A repository without a hooks directory is a fatal configuration
// error; everything else either creates the hook, replaces a previously
// installed block, or appends the block once to a pre-existing hook.
func Install(rootPath string, outputRelativePath string) (string, error) {
	hooksDirectory := filepath.Join(rootPath, utils.GitDirectoryName, hooksDirectoryName)
	hooksInfo, statError := os.Stat(hooksDirectory)
	if statError != nil || !hooksInfo.IsDir() {
		return "", fmt.Errorf(errorNotARepositoryFormat, utils.GitDirectoryName, hooksDirectoryName, rootPath)
	}

	hookFilePath := filepath.Join(hooksDirectory, preCommitHookName)
	hookBlock := fmt.Sprintf(hookBlockFormat, filepath.ToSlash(outputRelativePath))

	existingContent, readError := os.ReadFile(hookFilePath)
	if readError != nil && !os.IsNotExist(readError) {
		return "", fmt.Errorf(errorReadHookFormat, hookFilePath, readError)
	}

	var hookContent string
	switch {
	case os.IsNotExist(readError):
		hookContent = shebangLine + "\n" + hookBlock
	default:
		hookContent = upsertBlock(string(existingContent), hookBlock)
	}

	if writeError := os.WriteFile(hookFilePath, []byte(hookContent), 0o755); writeError != nil {
		return "", fmt.Errorf(errorWriteHookFormat, hookFilePath, writeError)
	}
	if chmodError := ensureExecutable(hookFilePath); chmodError != nil {
		return "", fmt.Errorf(errorChmodHookFormat, hookFilePath, chmodError)
	}
	return hookFilePath, nil
}

// upsertBlock replaces the managed block inside existing hook content, or
// appends it once when no block is present. Content outside the markers is
// preserved byte for byte.
func upsertBlock(existingContent string, hookBlock string) string {
	beginIndex := strings.Index(existingContent, beginMarker)
	endIndex := strings.Index(existingContent, endMarker)
	if beginIndex >= 0 && endIndex >= beginIndex {
		blockEnd := endIndex + len(endMarker)
		// Swallow the newline terminating the old block so replacement
		// does not accumulate blank lines.
		if blockEnd < len(existingContent) && existingContent[blockEnd] == '\n' {
			blockEnd++
		}
		return existingContent[:beginIndex] + hookBlock + existingContent[blockEnd:]
	}

	separator := "\n"
	if existingContent == "" {
		return shebangLine + "\n" + hookBlock
	}
	if strings.HasSuffix(existingContent, "\n") {
		separator = ""
	}
	return existingContent + separator + hookBlock
}

// ensureExecutable adds the owner execute bit while preserving existing mode bits.
func ensureExecutable(hookFilePath string) error {
	hookInfo, statError := os.Stat(hookFilePath)
	if statError != nil {
		return statError
	}
	return os.Chmod(hookFilePath, hookInfo.Mode()|0o100)
}
