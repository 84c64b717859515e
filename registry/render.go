// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"strings"
	"time"
)

// Branch glyphs for hierarchy rendering, conventional tree(1) style.
const (
	renderTee        = "├── "
	renderCorner     = "└── "
	renderPipeIndent = "│   "
	renderLastIndent = "    "
)

// RenderHierarchy renders the superclass hierarchy below root as an indented
// ASCII tree.
//
// Description:
//
//	Follows only the superclass relation; interfaces and mixins do not
//	appear. Children at each level are ordered alphabetically. The last
//	sibling at a level uses the corner glyph, earlier siblings the tee:
//
//	    Animal
//	    ├── Cat
//	    │   └── Tiger
//	    └── Dog
//
//	Callers should supply acyclic superclass data; a visited set nevertheless
//	guards the recursion, so cyclic input renders each name once instead of
//	overflowing the stack.
//
// Inputs:
//
//	root - Name to render at the top. Need not be registered; a dangling
//	       base with registered subclasses still renders its subtree.
//
// Outputs:
//
//	string - The rendered tree, newline-terminated. A root with no
//	         subclasses renders as a single line.
func (r *Registry) RenderHierarchy(root string) string {
	defer observeQuery("render_hierarchy", time.Now())

	var b strings.Builder
	b.WriteString(root)
	b.WriteByte('\n')

	visited := make(nameSet)
	visited[root] = struct{}{}
	r.renderChildren(&b, root, "", visited)

	return b.String()
}

// renderChildren appends root's subclasses (and their subtrees) to b.
func (r *Registry) renderChildren(b *strings.Builder, root, indent string, visited nameSet) {
	children := make([]string, 0, len(r.bySuperclass[root]))
	for name := range r.bySuperclass[root] {
		if _, seen := visited[name]; seen {
			continue
		}
		children = append(children, name)
	}
	sortStrings(children)

	for i, child := range children {
		visited[child] = struct{}{}

		branch, childIndent := renderTee, renderPipeIndent
		if i == len(children)-1 {
			branch, childIndent = renderCorner, renderLastIndent
		}

		b.WriteString(indent)
		b.WriteString(branch)
		b.WriteString(child)
		b.WriteByte('\n')

		r.renderChildren(b, child, indent+childIndent, visited)
	}
}
