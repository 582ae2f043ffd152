package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mbisign/repotree/internal/utils"
)

const warningCloseFileFormat = "Warning: failed to close %s: %v\n"

// LoadPatternLines reads one ignore file and returns its raw pattern lines.
// A missing file yields no lines and no error. Comment and blank lines are
// returned as-is; compilation happens in ParseLines.
//
// #nosec G304
func LoadPatternLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseFileFormat, ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		patternLines = append(patternLines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patternLines, nil
}

// LoadRuleSet builds the rule set for a project root: built-in defaults
// first, then the root's .ignore file, then .gitignore, then the explicit
// exclusion patterns. Later groups override earlier ones.
func LoadRuleSet(rootDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool) (*RuleSet, error) {
	patternGroups := [][]string{DefaultPatterns()}

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(rootDirectoryPath, utils.IgnoreFileName)
		ignoreFileLines, loadError := LoadPatternLines(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.IgnoreFileName, rootDirectoryPath, loadError)
		}
		patternGroups = append(patternGroups, ignoreFileLines)
	}

	if useGitignore {
		gitIgnoreFilePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
		gitIgnoreFileLines, loadError := LoadPatternLines(gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, rootDirectoryPath, loadError)
		}
		patternGroups = append(patternGroups, gitIgnoreFileLines)
	}

	patternGroups = append(patternGroups, utils.DeduplicatePatterns(exclusionPatterns))

	return NewRuleSet(patternGroups...), nil
}
