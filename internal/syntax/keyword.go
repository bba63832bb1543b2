package syntax

var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true,

	// reserved
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true,
}

// IsKeyword reports whether name is a strict or reserved Rust keyword. Raw
// identifiers like r#type are never keywords.
func IsKeyword(name string) bool {
	return keywords[name]
}

// IsPathKeyword reports whether name is a keyword allowed as a path segment.
func IsPathKeyword(name string) bool {
	switch name {
	case "self", "Self", "super", "crate":
		return true
	}
	return false
}
