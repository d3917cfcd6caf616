package pathutil

import "strings"

// Separator returns the path separator used by path. Paths are stored with
// the separators of the machine that indexed them, so a database built on
// Windows keeps backslash paths even when it is searched elsewhere.
func Separator(path string) byte {
	if strings.IndexByte(path, '\\') >= 0 && strings.IndexByte(path, '/') < 0 {
		return '\\'
	}
	return '/'
}

// isDrive reports whether s looks like a Windows drive specifier such as "F:".
func isDrive(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// BaseName returns the final path component.
func BaseName(path string) string {
	sep := Separator(path)
	trimmed := strings.TrimRight(path, string(sep))
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndexByte(trimmed, sep); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Split breaks a path into its segments, discarding empty segments produced
// by leading, trailing, or doubled separators. A drive specifier ("F:") is
// returned as its own segment.
func Split(path string) []string {
	sep := Separator(path)
	parts := strings.Split(path, string(sep))
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// RootComponent returns the root portion of path: "F:\" for drive paths,
// "\\host\share\" for UNC paths, "/" for Unix absolute paths, and "" for
// relative paths.
func RootComponent(path string) string {
	if strings.HasPrefix(path, `\\`) {
		// UNC: \\host\share\...
		rest := path[2:]
		i := strings.IndexByte(rest, '\\')
		if i < 0 {
			return path + `\`
		}
		j := strings.IndexByte(rest[i+1:], '\\')
		if j < 0 {
			return path + `\`
		}
		return path[:2+i+1+j+1]
	}
	segments := Split(path)
	if len(segments) > 0 && isDrive(segments[0]) {
		return segments[0] + string(Separator(path))
	}
	sep := Separator(path)
	if len(path) > 0 && path[0] == sep {
		return string(sep)
	}
	return ""
}

// Dir returns the directory portion of path: everything up to the last
// separator, collapsing to the root component for top-level entries.
func Dir(path string) string {
	sep := Separator(path)
	root := RootComponent(path)
	i := strings.LastIndexByte(path, sep)
	if i < 0 {
		return ""
	}
	dir := path[:i]
	if len(dir) < len(root) {
		return root
	}
	return dir
}

// CommonDirPrefix finds the shared root across a result set: the longest
// prefix of all the paths' directory portions that ends on a separator
// boundary. A single path yields its root component, so its full directory
// structure survives tree building. Paths with differing roots (for example
// mixed drive letters) fall back to the first path's root component.
func CommonDirPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	if len(paths) == 1 {
		return RootComponent(paths[0])
	}

	common := Dir(paths[0])
	for _, p := range paths[1:] {
		common = commonPath(common, Dir(p))
		if common == "" {
			return RootComponent(paths[0])
		}
	}
	return common
}

// commonPath returns the longest shared segment prefix of two directory
// paths, or "" when they have nothing in common (including differing
// separators or roots).
func commonPath(a, b string) string {
	sep := Separator(a)
	if Separator(b) != sep {
		return ""
	}
	if (strings.HasPrefix(a, `\\`)) != (strings.HasPrefix(b, `\\`)) {
		return ""
	}

	as, bs := Split(a), Split(b)
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	i := 0
	for i < n && as[i] == bs[i] {
		i++
	}
	if i == 0 {
		return ""
	}

	joined := strings.Join(as[:i], string(sep))
	switch {
	case strings.HasPrefix(a, `\\`):
		joined = `\\` + joined
	case len(a) > 0 && a[0] == sep:
		joined = string(sep) + joined
	}
	if i == 1 && isDrive(as[0]) {
		joined += string(sep)
	}
	return joined
}

// StripPrefix removes the detected root prefix and any separators that
// follow it, returning the relative remainder of path.
func StripPrefix(path, prefix string) string {
	rel := strings.TrimPrefix(path, prefix)
	return strings.TrimLeft(rel, `/\`)
}

// JoinRoot attaches a relative remainder to a new root, inserting a single
// separator at the boundary. The remainder keeps its internal separators
// untouched.
func JoinRoot(root, rel string) string {
	if root == "" {
		return rel
	}
	if rel == "" {
		return root
	}
	rootEndsSep := root[len(root)-1] == '/' || root[len(root)-1] == '\\'
	relStartsSep := rel[0] == '/' || rel[0] == '\\'
	switch {
	case rootEndsSep && relStartsSep:
		return root + rel[1:]
	case !rootEndsSep && !relStartsSep:
		return root + string(Separator(root)) + rel
	default:
		return root + rel
	}
}
