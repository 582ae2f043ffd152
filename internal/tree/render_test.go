package tree_test

import (
	"strings"
	"testing"

	"github.com/mbisign/repotree/internal/tree"
)

const codeFence = "```"

// joinLines builds expected renderer output from individual lines.
func joinLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func directoryEntry(name string, children ...*tree.Entry) *tree.Entry {
	return &tree.Entry{Name: name, IsDir: true, Children: children}
}

func fileEntry(name string) *tree.Entry {
	return &tree.Entry{Name: name}
}

func TestRenderEmptyTreeShowsOnlyRootLabel(t *testing.T) {
	rootEntry := directoryEntry("myproject")

	expected := joinLines(
		codeFence,
		"myproject/",
		codeFence,
	)
	actual := tree.Render(rootEntry, "myproject")
	if actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestRenderInsertsSpacerAfterNonLastDirectoryBlocks(t *testing.T) {
	rootEntry := directoryEntry("myproject",
		directoryEntry("docs"),
		directoryEntry("src",
			fileEntry("main.txt"),
			fileEntry("utils.txt"),
		),
		fileEntry("LICENSE"),
	)

	expected := joinLines(
		codeFence,
		"myproject/",
		"├── docs/",
		"│",
		"├── src/",
		"│   ├── main.txt",
		"│   └── utils.txt",
		"│",
		"└── LICENSE",
		codeFence,
	)
	actual := tree.Render(rootEntry, "myproject")
	if actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestRenderCarriesContinuationBarsThroughAncestorColumns(t *testing.T) {
	rootEntry := directoryEntry("root",
		directoryEntry("a",
			directoryEntry("b",
				fileEntry("f.txt"),
			),
			fileEntry("g.txt"),
		),
	)

	expected := joinLines(
		codeFence,
		"root/",
		"└── a/",
		"    ├── b/",
		"    │   └── f.txt",
		"    │",
		"    └── g.txt",
		codeFence,
	)
	actual := tree.Render(rootEntry, "root")
	if actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestRenderOmitsSpacerAfterLastDirectoryBlock(t *testing.T) {
	rootEntry := directoryEntry("root",
		fileEntry("README.md"),
		directoryEntry("src",
			fileEntry("main.txt"),
		),
	)

	expected := joinLines(
		codeFence,
		"root/",
		"├── README.md",
		"└── src/",
		"    └── main.txt",
		codeFence,
	)
	actual := tree.Render(rootEntry, "root")
	if actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	rootEntry := directoryEntry("root",
		directoryEntry("src",
			fileEntry("main.txt"),
		),
		fileEntry("LICENSE"),
	)
	firstRender := tree.Render(rootEntry, "root")
	secondRender := tree.Render(rootEntry, "root")
	if firstRender != secondRender {
		t.Fatalf("expected byte-identical output across renders")
	}
}
