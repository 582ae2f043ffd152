// Package ignore parses gitignore-style patterns and evaluates them against
// paths relative to the project root.
package ignore

import (
	"path/filepath"
	"strings"
)

const (
	// commentPrefix marks a pattern line that carries no rule.
	commentPrefix = "#"
	// negationPrefix marks a pattern that re-includes previously ignored paths.
	negationPrefix = "!"
	// pathSegmentSeparator separates pattern and path segments.
	pathSegmentSeparator = "/"
	// recursiveWildcardSegment matches any number of path segments.
	recursiveWildcardSegment = "**"
	// rootRelativePath is the relative path of the project root itself.
	rootRelativePath = "."
)

// defaultPatterns lists build, cache, and version-control artifacts that are
// excluded before any file-sourced patterns. Later negation patterns can
// re-include any of them.
var defaultPatterns = []string{
	".git/",
	".hg/",
	".svn/",
	"node_modules/",
	"__pycache__/",
	"build/",
	"dist/",
	"target/",
	"*.pyc",
	".DS_Store",
	".idea/",
	".vscode/",
}

// DefaultPatterns returns a copy of the built-in default ignore patterns.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

// Rule is a single compiled ignore pattern.
type Rule struct {
	segments      []string
	directoryOnly bool
	negated       bool
	anchored      bool
}

// ParseLine compiles one pattern line into a Rule. The second return value
// is false for blank lines and comments, which carry no rule.
func ParseLine(line string) (Rule, bool) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
		return Rule{}, false
	}

	var rule Rule
	if strings.HasPrefix(trimmedLine, negationPrefix) {
		rule.negated = true
		trimmedLine = strings.TrimPrefix(trimmedLine, negationPrefix)
	}
	if strings.HasSuffix(trimmedLine, pathSegmentSeparator) {
		rule.directoryOnly = true
		trimmedLine = strings.TrimSuffix(trimmedLine, pathSegmentSeparator)
	}
	if strings.HasPrefix(trimmedLine, pathSegmentSeparator) {
		rule.anchored = true
		trimmedLine = strings.TrimPrefix(trimmedLine, pathSegmentSeparator)
	}
	// A separator anywhere in the pattern anchors it to the root,
	// matching gitignore semantics.
	if strings.Contains(trimmedLine, pathSegmentSeparator) {
		rule.anchored = true
	}
	if trimmedLine == "" {
		return Rule{}, false
	}

	for _, segment := range strings.Split(trimmedLine, pathSegmentSeparator) {
		if segment == "" {
			continue
		}
		rule.segments = append(rule.segments, segment)
	}
	if len(rule.segments) == 0 {
		return Rule{}, false
	}
	return rule, true
}

// ParseLines compiles pattern lines in declaration order, dropping comments
// and blank lines.
func ParseLines(lines []string) []Rule {
	var rules []Rule
	for _, line := range lines {
		rule, ok := ParseLine(line)
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// RuleSet is an ordered sequence of ignore rules. Later rules override
// earlier ones for the same path (last-match-wins).
type RuleSet struct {
	rules []Rule
}

// NewRuleSet compiles the provided pattern groups into a RuleSet. Groups are
// appended in argument order, so patterns in later groups take precedence.
func NewRuleSet(patternGroups ...[]string) *RuleSet {
	ruleSet := &RuleSet{}
	for _, patterns := range patternGroups {
		ruleSet.rules = append(ruleSet.rules, ParseLines(patterns)...)
	}
	return ruleSet
}

// Len returns the number of compiled rules.
func (ruleSet *RuleSet) Len() int {
	return len(ruleSet.rules)
}

// Match reports whether the path, given relative to the project root in
// forward-slash form, is ignored. Rules are evaluated in declaration order
// and the last rule that matches decides: negated rules flip the outcome to
// not-ignored. A path no rule matches is not ignored. The root itself is
// never ignored.
func (ruleSet *RuleSet) Match(relativePath string, isDirectory bool) bool {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	normalizedPath = strings.Trim(normalizedPath, pathSegmentSeparator)
	if normalizedPath == "" || normalizedPath == rootRelativePath {
		return false
	}
	pathSegments := strings.Split(normalizedPath, pathSegmentSeparator)

	ignored := false
	for _, rule := range ruleSet.rules {
		if rule.matches(pathSegments, isDirectory) {
			ignored = !rule.negated
		}
	}
	return ignored
}

// matches reports whether the rule applies to the path given as segments.
func (rule Rule) matches(pathSegments []string, isDirectory bool) bool {
	if rule.anchored {
		return rule.matchesFromRoot(pathSegments, isDirectory)
	}

	// An unanchored pattern is a single segment that matches the entry
	// name at any depth. A match on a non-final segment means the path is
	// a descendant of a matched directory and is covered as well.
	pattern := rule.segments[0]
	lastIndex := len(pathSegments) - 1
	for segmentIndex, pathSegment := range pathSegments {
		isMatched, matchError := filepath.Match(pattern, pathSegment)
		if matchError != nil || !isMatched {
			continue
		}
		if segmentIndex < lastIndex {
			return true
		}
		if !rule.directoryOnly || isDirectory {
			return true
		}
	}
	return false
}

// matchesFromRoot evaluates an anchored rule against the full path. The rule
// matches the named path itself and, when it names a directory, everything
// beneath it.
func (rule Rule) matchesFromRoot(pathSegments []string, isDirectory bool) bool {
	for prefixLength := 1; prefixLength <= len(pathSegments); prefixLength++ {
		if !segmentsMatch(rule.segments, pathSegments[:prefixLength]) {
			continue
		}
		if prefixLength < len(pathSegments) {
			return true
		}
		if !rule.directoryOnly || isDirectory {
			return true
		}
	}
	return false
}

// segmentsMatch reports whether the pattern segments match the path segments
// exactly. A "**" segment matches any number of path segments, including
// none; every other segment is evaluated with filepath.Match semantics.
func segmentsMatch(patternSegments, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == recursiveWildcardSegment {
		for skipCount := 0; skipCount <= len(pathSegments); skipCount++ {
			if segmentsMatch(patternSegments[1:], pathSegments[skipCount:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	isMatched, matchError := filepath.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !isMatched {
		return false
	}
	return segmentsMatch(patternSegments[1:], pathSegments[1:])
}
