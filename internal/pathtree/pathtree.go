// Package pathtree rebuilds relative file paths into a hierarchy and renders it
// with box-drawing branches.
package pathtree

import (
	"iter"
	"os"
	"slices"
	"strings"
)

const (
	branchConnector     = "├── "
	lastBranchConnector = "└── "
	continuationPrefix  = "│   "
	emptyPrefix         = "    "
)

// Node is one path component. A node exclusively owns its children.
type Node struct {
	Name     string
	Children map[string]*Node
}

// New returns a node with the given name and no children.
func New(name string) *Node {
	return &Node{Name: name, Children: map[string]*Node{}}
}

// Build inserts every relative path into a fresh anonymous root.
func Build(relativePaths []string) *Node {
	root := New("")
	for _, relativePath := range relativePaths {
		root.InsertPath(relativePath)
	}
	return root
}

// Insert descends one level per component, creating missing children on the way.
func (node *Node) Insert(components []string) {
	current := node
	for _, component := range components {
		child, exists := current.Children[component]
		if !exists {
			child = New(component)
			current.Children[component] = child
		}
		current = child
	}
}

// InsertPath splits relativePath on the platform separator and on "/" and inserts the components.
func (node *Node) InsertPath(relativePath string) {
	node.Insert(splitComponents(relativePath))
}

func splitComponents(relativePath string) []string {
	normalized := strings.ReplaceAll(relativePath, string(os.PathSeparator), "/")
	var components []string
	for _, component := range strings.Split(normalized, "/") {
		if component == "" || component == "." {
			continue
		}
		components = append(components, component)
	}
	return components
}

// SortedChildNames returns the names of the direct children in lexicographic order.
func (node *Node) SortedChildNames() []string {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render yields the display lines for node and its descendants. The node's own line is
// omitted when its name is empty. Children are visited in lexicographic order.
func (node *Node) Render(prefix string, isLast bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		node.render(prefix, isLast, yield)
	}
}

func (node *Node) render(prefix string, isLast bool, yield func(string) bool) bool {
	if node.Name != "" {
		connector := branchConnector
		if isLast {
			connector = lastBranchConnector
		}
		if !yield(prefix + connector + node.Name) {
			return false
		}
	}
	// The anonymous root adds no indentation of its own.
	childPrefix := prefix
	if node.Name != "" {
		if isLast {
			childPrefix = prefix + emptyPrefix
		} else {
			childPrefix = prefix + continuationPrefix
		}
	}
	names := node.SortedChildNames()
	for index, name := range names {
		if !node.Children[name].render(childPrefix, index == len(names)-1, yield) {
			return false
		}
	}
	return true
}

// Lines renders the tree from an anonymous root.
func (node *Node) Lines() []string {
	return slices.Collect(node.Render("", true))
}
