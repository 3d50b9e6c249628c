// Package nav tracks the current directory within a fixed root boundary.
package nav

import (
	"path/filepath"
	"strings"
)

// Navigator holds a root boundary and the current directory. Current is
// always the root or a descendant of it; until SetRoot is called both are
// empty and navigation is refused.
type Navigator struct {
	root    string
	current string
}

// SetRoot establishes the boundary and moves current to it.
func (n *Navigator) SetRoot(path string) {
	n.root = filepath.Clean(path)
	n.current = n.root
}

// Root returns the boundary directory, or "" before SetRoot.
func (n *Navigator) Root() string { return n.root }

// Current returns the current directory, or "" before SetRoot.
func (n *Navigator) Current() string { return n.current }

// Ready reports whether a root has been chosen.
func (n *Navigator) Ready() bool { return n.root != "" }

// NavigateTo moves current to path. Callers pass only known children or
// validated ancestors, so no boundary check happens here.
func (n *Navigator) NavigateTo(path string) {
	n.current = filepath.Clean(path)
}

// Up moves current to its parent and reports whether it moved. It is a
// no-op when current is a filesystem root or when the parent would leave
// the root boundary.
func (n *Navigator) Up() bool {
	if !n.Ready() {
		return false
	}
	parent := filepath.Dir(n.current)
	if parent == n.current {
		return false
	}
	if !n.Within(parent) {
		return false
	}
	n.current = parent
	return true
}

// Within reports whether path equals the root or descends from it.
func (n *Navigator) Within(path string) bool {
	if !n.Ready() {
		return false
	}
	p := filepath.Clean(path)
	if p == n.root {
		return true
	}
	prefix := n.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}

// Ancestors returns the chain from root to current, inclusive, for
// breadcrumb rendering. Every element is a valid NavigateTo target.
func (n *Navigator) Ancestors() []string {
	if !n.Ready() {
		return nil
	}
	var chain []string
	p := n.current
	for {
		chain = append(chain, p)
		if p == n.root {
			break
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	// reverse to root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
