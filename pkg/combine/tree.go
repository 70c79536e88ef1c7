// File: pkg/combine/tree.go
package combine

import (
	"sort"
	"strings"
)

// TreeHeader is the first line of every rendered tree.
const TreeHeader = "Project tree"

// treeNode is one path segment. A node with children is a directory; a node
// without children is a file.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: map[string]*treeNode{}}
}

func (n *treeNode) isDir() bool {
	return len(n.children) > 0
}

// insert adds the path segments below n, creating intermediate directories.
func (n *treeNode) insert(segments []string) {
	current := n
	for _, segment := range segments {
		child, ok := current.children[segment]
		if !ok {
			child = newTreeNode(segment)
			current.children[segment] = child
		}
		current = child
	}
}

// sortedChildren orders entries with directories first, then by name.
func (n *treeNode) sortedChildren() []*treeNode {
	entries := make([]*treeNode, 0, len(n.children))
	for _, child := range n.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		left, right := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if left != right {
			return left < right
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// buildTree reconstructs the directory hierarchy from relative paths.
func buildTree(relPaths []string) *treeNode {
	root := newTreeNode("")
	for _, rel := range relPaths {
		segments := splitSegments(rel)
		if len(segments) == 0 {
			continue
		}
		root.insert(segments)
	}
	return root
}

// RenderTree renders the retained files below root as a tree. The result
// depends only on the set of relative paths, not on their order.
func RenderTree(files []string, root string) string {
	root = canonicalRoot(root)
	relPaths := make([]string, 0, len(files))
	for _, file := range files {
		relPaths = append(relPaths, RelativePath(root, file))
	}
	return RenderRelativeTree(relPaths)
}

// RenderRelativeTree renders a tree from forward-slash relative paths.
func RenderRelativeTree(relPaths []string) string {
	var builder strings.Builder
	builder.WriteString(TreeHeader)
	builder.WriteString("\n")
	renderChildren(&builder, buildTree(relPaths), "")
	builder.WriteString("\n")
	return builder.String()
}

// renderChildren writes one line per descendant of node, depth first.
func renderChildren(builder *strings.Builder, node *treeNode, prefix string) {
	entries := node.sortedChildren()
	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(entry.name)
		if entry.isDir() {
			builder.WriteString("/")
		}
		builder.WriteString("\n")

		if entry.isDir() {
			renderChildren(builder, entry, prefix+extension)
		}
	}
}

func splitSegments(rel string) []string {
	parts := strings.Split(rel, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
