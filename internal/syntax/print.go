package syntax

import (
	"strings"
)

// Format returns the Rust source of the token trees. It separates tokens by
// single spaces unless the Rust style omits the space, e.g., before "," or
// around "::". Joint punctuation is never separated.
func Format(trees []Tree) string {
	var b strings.Builder
	writeTrees(&b, trees)
	return b.String()
}

func writeTrees(b *strings.Builder, trees []Tree) {
	for i, t := range trees {
		if i > 0 && space(trees, i) {
			b.WriteByte(' ')
		}
		writeTree(b, t)
	}
}

func writeTree(b *strings.Builder, t Tree) {
	if t.Kind != Group {
		b.WriteString(t.Text)
		return
	}

	b.WriteString(t.Delim.Open())
	pad := t.Delim == Brace && len(t.Trees) != 0
	if pad {
		b.WriteByte(' ')
	}
	writeTrees(b, t.Trees)
	if pad {
		b.WriteByte(' ')
	}
	b.WriteString(t.Delim.Close())
}

// space reports whether a space goes between trees[i-1] and trees[i].
func space(trees []Tree, i int) bool {
	prev, next := trees[i-1], trees[i]

	switch {
	case prev.Kind == Punct && prev.Joint:
		return false

	case next.Kind == Punct && oneOf(next.Text, ",", ";", ".", "?", ":", "..", "..=", ">"):
		return false

	case prev.Kind == Punct && oneOf(prev.Text, ".", "::", "#", "<", "..", "..="):
		return false

	case prev.IsPunct("!") && i >= 2 && trees[i-2].IsPunct("#"):
		// #![...]
		return false

	case next.IsPunct("::"):
		return !(isPathLike(prev) || prev.IsPunct(">") || prev.Kind == Group)

	case next.IsPunct("!"):
		// Macro invocations: compile_error!
		return prev.Kind != Ident

	case next.IsPunct("<"):
		return !(prev.Kind == Ident || prev.IsPunct("&"))

	case isUnary(trees, i-1):
		return false

	case next.Kind == Group && next.Delim != Brace:
		if prev.Kind == Ident {
			return IsKeyword(prev.Text) && !IsPathKeyword(prev.Text) && prev.Text != "pub" && prev.Text != "fn"
		}
		return !(prev.Kind == Group || prev.IsPunct(">") || prev.IsPunct("!"))
	}
	return true
}

// isPathLike reports whether the tree can be followed by "::" as a path
// continuation.
func isPathLike(t Tree) bool {
	return t.Kind == Ident && (!IsKeyword(t.Text) || IsPathKeyword(t.Text))
}

// isUnary reports whether trees[i] is a prefix operator like "&" in "&'a T".
func isUnary(trees []Tree, i int) bool {
	t := trees[i]
	if t.Kind != Punct || !oneOf(t.Text, "&", "&&", "*", "-", "!") {
		return false
	}
	if i == 0 {
		return true
	}
	prev := trees[i-1]
	switch prev.Kind {
	case Punct:
		return true
	case Ident:
		return IsKeyword(prev.Text) && !IsPathKeyword(prev.Text)
	}
	return false
}

func oneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
