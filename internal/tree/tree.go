package tree

import (
	"sort"
	"strings"

	"findex/internal/pathutil"
	"findex/internal/search"
)

// Kind distinguishes directory and file nodes.
type Kind int

const (
	// KindDir is an intermediate directory node.
	KindDir Kind = iota
	// KindFile is a terminal file node carrying its search result.
	KindFile
)

// Node is one entry in the path hierarchy. File nodes carry the result they
// were built from; directory nodes only aggregate children.
type Node struct {
	Name     string
	Path     string
	Kind     Kind
	Children []*Node
	Result   *search.Result
}

// child returns the existing child named name, or nil.
func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Build arranges results into a tree rooted at their common directory
// prefix. rootName overrides the display name of the root node; when empty
// the detected prefix is used. Empty input yields a root-only node.
func Build(results []search.Result, rootName string) *Node {
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	prefix := pathutil.CommonDirPrefix(paths)

	name := rootName
	if name == "" {
		name = prefix
	}
	if name == "" {
		name = "."
	}
	root := &Node{Name: name, Path: prefix, Kind: KindDir}

	for i := range results {
		insert(root, prefix, &results[i])
	}

	sortChildren(root)
	return root
}

// insert walks res.Path below prefix, creating directory nodes on demand and
// a terminal file node.
func insert(root *Node, prefix string, res *search.Result) {
	rel := pathutil.StripPrefix(res.Path, prefix)
	segments := pathutil.Split(rel)
	if len(segments) == 0 {
		return
	}

	cur := root
	curPath := prefix
	for _, seg := range segments[:len(segments)-1] {
		curPath = pathutil.JoinRoot(curPath, seg)
		next := cur.child(seg)
		if next == nil {
			next = &Node{Name: seg, Path: curPath, Kind: KindDir}
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}

	leaf := segments[len(segments)-1]
	cur.Children = append(cur.Children, &Node{
		Name:   leaf,
		Path:   res.Path,
		Kind:   KindFile,
		Result: res,
	})
}

// sortChildren orders every node's children directories-first, then by
// case-insensitive name.
func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Kind != b.Kind {
			return a.Kind == KindDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	for _, c := range n.Children {
		sortChildren(c)
	}
}

// Render returns a box-drawing text view of the tree.
func Render(root *Node) string {
	var b strings.Builder
	b.WriteString(root.Name)
	b.WriteByte('\n')
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, n *Node, indent string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		if last {
			b.WriteString(indent + "└─ " + c.Name + "\n")
			renderChildren(b, c, indent+"   ")
		} else {
			b.WriteString(indent + "├─ " + c.Name + "\n")
			renderChildren(b, c, indent+"│  ")
		}
	}
}

// RewriteRoot re-bases every result path onto newRoot, replacing the common
// directory prefix and keeping the remainder byte-for-byte. An empty newRoot
// returns an unchanged copy.
func RewriteRoot(results []search.Result, newRoot string) []search.Result {
	out := make([]search.Result, len(results))
	copy(out, results)
	if newRoot == "" {
		return out
	}

	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	prefix := pathutil.CommonDirPrefix(paths)

	for i := range out {
		rel := pathutil.StripPrefix(out[i].Path, prefix)
		out[i].Path = pathutil.JoinRoot(newRoot, rel)
	}
	return out
}
