package tree

import (
	"strings"
)

// Connector glyphs and prefixes. A node that is not the last child of its
// parent carries a vertical continuation bar down through its column.
const (
	middleConnector    = "├── "
	lastConnector      = "└── "
	continuationPrefix = "│   "
	lastChildPrefix    = "    "
	spacerBar          = "│"
	directorySuffix    = "/"
	codeFenceLine      = "```"
	lineBreak          = "\n"
)

// Render converts the entry tree into a fenced Markdown code block. The
// first line inside the fence is the root label with a trailing slash.
// Identical trees always render to byte-identical text.
func Render(rootEntry *Entry, rootLabel string) string {
	var builder strings.Builder
	builder.WriteString(codeFenceLine + lineBreak)
	builder.WriteString(rootLabel + directorySuffix + lineBreak)
	renderChildren(&builder, rootEntry, "")
	builder.WriteString(codeFenceLine + lineBreak)
	return builder.String()
}

// renderChildren writes one line per child of parentEntry, recursing into
// directories. After a directory block that is not the last sibling, a bare
// vertical bar line is emitted to visually separate directory groups
// ("smart spacing").
func renderChildren(builder *strings.Builder, parentEntry *Entry, prefix string) {
	childCount := len(parentEntry.Children)
	for childIndex, childEntry := range parentEntry.Children {
		isLastChild := childIndex == childCount-1

		connector := middleConnector
		childPrefix := prefix + continuationPrefix
		if isLastChild {
			connector = lastConnector
			childPrefix = prefix + lastChildPrefix
		}

		displayName := childEntry.Name
		if childEntry.IsDir {
			displayName += directorySuffix
		}
		builder.WriteString(prefix + connector + displayName + lineBreak)

		if childEntry.IsDir {
			renderChildren(builder, childEntry, childPrefix)
			if !isLastChild {
				builder.WriteString(prefix + spacerBar + lineBreak)
			}
		}
	}
}
