package ignore_test

import (
	"testing"

	"github.com/mbisign/repotree/internal/ignore"
)

// matchTestCase describes one matcher evaluation.
type matchTestCase struct {
	name        string
	patterns    []string
	path        string
	isDirectory bool
	expected    bool
}

func TestRuleSetMatch(t *testing.T) {
	testCases := []matchTestCase{
		{
			name:     "no_patterns_keeps_path",
			patterns: nil,
			path:     "src/main.txt",
			expected: false,
		},
		{
			name:     "exact_name_matches_at_any_depth",
			patterns: []string{"secret.txt"},
			path:     "nested/deeply/secret.txt",
			expected: true,
		},
		{
			name:     "single_level_wildcard_matches_basename",
			patterns: []string{"*.log"},
			path:     "debug.log",
			expected: true,
		},
		{
			name:     "single_level_wildcard_does_not_cross_separator",
			patterns: []string{"/a*b"},
			path:     "a/b",
			expected: false,
		},
		{
			name:     "negation_flips_last_match",
			patterns: []string{"*.log", "!keep.log"},
			path:     "keep.log",
			expected: false,
		},
		{
			name:     "negation_leaves_other_matches_ignored",
			patterns: []string{"*.log", "!keep.log"},
			path:     "a.log",
			expected: true,
		},
		{
			name:     "later_pattern_overrides_earlier_negation",
			patterns: []string{"!keep.log", "*.log"},
			path:     "keep.log",
			expected: true,
		},
		{
			name:        "directory_only_pattern_matches_directory",
			patterns:    []string{"build/"},
			path:        "build",
			isDirectory: true,
			expected:    true,
		},
		{
			name:     "directory_only_pattern_skips_file_of_same_name",
			patterns: []string{"build/"},
			path:     "build",
			expected: false,
		},
		{
			name:     "directory_only_pattern_covers_descendants",
			patterns: []string{"build/"},
			path:     "build/artifacts/app.bin",
			expected: true,
		},
		{
			name:     "anchored_pattern_matches_from_root_only",
			patterns: []string{"/docs"},
			path:     "docs",
			expected: true,
		},
		{
			name:     "anchored_pattern_does_not_match_nested_name",
			patterns: []string{"/docs"},
			path:     "pkg/docs",
			expected: false,
		},
		{
			name:     "interior_separator_anchors_pattern",
			patterns: []string{"pkg/docs"},
			path:     "other/pkg/docs",
			expected: false,
		},
		{
			name:     "interior_separator_pattern_matches_exact_path",
			patterns: []string{"pkg/docs"},
			path:     "pkg/docs",
			expected: true,
		},
		{
			name:     "recursive_wildcard_crosses_separators",
			patterns: []string{"src/**/generated"},
			path:     "src/a/b/generated",
			expected: true,
		},
		{
			name:     "recursive_wildcard_matches_zero_segments",
			patterns: []string{"src/**/generated"},
			path:     "src/generated",
			expected: true,
		},
		{
			name:     "recursive_wildcard_trailing_matches_everything_beneath",
			patterns: []string{"cache/**"},
			path:     "cache/a/b/c.txt",
			expected: true,
		},
		{
			name:     "comments_and_blank_lines_are_skipped",
			patterns: []string{"# a comment", "", "   ", "*.tmp"},
			path:     "scratch.tmp",
			expected: true,
		},
		{
			name:        "root_itself_is_never_ignored",
			patterns:    []string{"*"},
			path:        ".",
			isDirectory: true,
			expected:    false,
		},
		{
			name:     "backslash_paths_are_normalized",
			patterns: []string{"node_modules/"},
			path:     `app\node_modules\left-pad\index.js`,
			expected: true,
		},
		{
			name:        "question_mark_matches_single_character",
			patterns:    []string{"v?"},
			path:        "v1",
			isDirectory: true,
			expected:    true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ruleSet := ignore.NewRuleSet(testCase.patterns)
			actual := ruleSet.Match(testCase.path, testCase.isDirectory)
			if actual != testCase.expected {
				t.Fatalf("Match(%q, %v) = %v, expected %v", testCase.path, testCase.isDirectory, actual, testCase.expected)
			}
		})
	}
}

func TestNewRuleSetGroupOrderGivesLaterGroupsPrecedence(t *testing.T) {
	ruleSet := ignore.NewRuleSet([]string{"*.log"}, []string{"!keep.log"})
	if ruleSet.Match("keep.log", false) {
		t.Fatalf("expected later group negation to win")
	}
	if !ruleSet.Match("other.log", false) {
		t.Fatalf("expected earlier group pattern to still apply")
	}
}

func TestDefaultPatternsExcludeVersionControlAndCaches(t *testing.T) {
	ruleSet := ignore.NewRuleSet(ignore.DefaultPatterns())
	defaultIgnoredDirectories := []string{".git", "node_modules", "__pycache__"}
	for _, directoryName := range defaultIgnoredDirectories {
		if !ruleSet.Match(directoryName, true) {
			t.Fatalf("expected default patterns to ignore directory %q", directoryName)
		}
	}
	if !ruleSet.Match(".DS_Store", false) {
		t.Fatalf("expected default patterns to ignore .DS_Store")
	}
	if ruleSet.Match("src", true) {
		t.Fatalf("expected default patterns to keep ordinary directories")
	}
}

func TestDefaultPatternsAreOverridableByNegation(t *testing.T) {
	ruleSet := ignore.NewRuleSet(ignore.DefaultPatterns(), []string{"!node_modules/"})
	if ruleSet.Match("node_modules", true) {
		t.Fatalf("expected explicit negation to re-include a default pattern")
	}
}

func TestParseLineRejectsCommentsAndBlankLines(t *testing.T) {
	rejectedLines := []string{"", "   ", "# comment", "/", "!"}
	for _, line := range rejectedLines {
		if _, ok := ignore.ParseLine(line); ok {
			t.Fatalf("expected ParseLine(%q) to produce no rule", line)
		}
	}
}
