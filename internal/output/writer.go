// Package output writes rendered documents to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	temporaryFilePattern = ".repotree-*.tmp"

	errorCreateDirectoryFormat = "creating output directory %s: %w"
	errorCreateTemporaryFormat = "creating temporary file in %s: %w"
	errorWriteTemporaryFormat  = "writing %s: %w"
	errorReplaceOutputFormat   = "replacing %s: %w"
)

// WriteFileAtomic writes content to outputFilePath, creating parent
// directories as needed. The content is written to a temporary file in the
// destination directory and renamed over the target, so a partially written
// file is never observable: on any failure the previous output, if one
// existed, is left untouched.
func WriteFileAtomic(outputFilePath string, content string) error {
	outputDirectory := filepath.Dir(outputFilePath)
	if mkdirError := os.MkdirAll(outputDirectory, 0o755); mkdirError != nil {
		return fmt.Errorf(errorCreateDirectoryFormat, outputDirectory, mkdirError)
	}

	temporaryFile, createError := os.CreateTemp(outputDirectory, temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorCreateTemporaryFormat, outputDirectory, createError)
	}
	temporaryFilePath := temporaryFile.Name()

	_, writeError := temporaryFile.WriteString(content)
	closeError := temporaryFile.Close()
	if writeError == nil {
		writeError = closeError
	}
	if writeError != nil {
		_ = os.Remove(temporaryFilePath)
		return fmt.Errorf(errorWriteTemporaryFormat, temporaryFilePath, writeError)
	}

	if renameError := os.Rename(temporaryFilePath, outputFilePath); renameError != nil {
		_ = os.Remove(temporaryFilePath)
		return fmt.Errorf(errorReplaceOutputFormat, outputFilePath, renameError)
	}
	return nil
}
