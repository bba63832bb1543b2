package syntax

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
)

// Lex reads src as Rust source code and returns its token trees. The source is
// added to fset as a file named filename, so that positions of the trees and
// errors can be resolved by fset.
//
// Comments are dropped except outer doc comments ("///" and "/** */") which
// become "#[doc = ...]" attributes like the Rust compiler does.
func Lex(fset *token.FileSet, filename string, src []byte) ([]Tree, error) {
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	l := &lexer{fset: fset, file: file, src: src}
	trees, err := l.trees(NoDelim, token.NoPos)
	if err != nil {
		return nil, err
	}
	return trees, nil
}

type lexer struct {
	fset *token.FileSet
	file *token.File
	src  []byte
	off  int
}

func (l *lexer) FileSet() *token.FileSet { return l.fset }

func (l *lexer) pos(off int) token.Pos { return l.file.Pos(off) }

func (l *lexer) errorf(off int, format string, args ...any) error {
	return codefmt.Errorf(l, codefmt.Pos(l.pos(off)), format, args...)
}

func (l *lexer) peek(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

// trees reads token trees until the closing delimiter of open or EOF.
func (l *lexer) trees(open Delimiter, openPos token.Pos) ([]Tree, error) {
	var trees []Tree
	for {
		doc, err := l.skip()
		if err != nil {
			return nil, err
		}
		if doc != nil {
			trees = append(trees, doc...)
			continue
		}

		if l.off >= len(l.src) {
			if open != NoDelim {
				return nil, codefmt.Errorf(l, codefmt.Pos(openPos), "unclosed delimiter `%s`", open.Open())
			}
			return trees, nil
		}

		start := l.off
		c := l.src[l.off]
		switch c {
		case '(', '[', '{':
			delim := delimOf(c)
			l.off++
			inner, err := l.trees(delim, l.pos(start))
			if err != nil {
				return nil, err
			}
			trees = append(trees, Tree{
				Kind:  Group,
				Delim: delim,
				Trees: inner,
				pos:   l.pos(start),
				end:   l.pos(l.off),
			})
			continue

		case ')', ']', '}':
			if open == NoDelim {
				return nil, l.errorf(start, "unexpected closing delimiter `%c`", c)
			}
			if delimOf(c) != open {
				return nil, l.errorf(start, "mismatched closing delimiter `%c`", c)
			}
			l.off++
			return trees, nil
		}

		tree, err := l.token()
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
}

func delimOf(c byte) Delimiter {
	switch c {
	case '(', ')':
		return Paren
	case '[', ']':
		return Bracket
	case '{', '}':
		return Brace
	}
	return NoDelim
}

// skip skips whitespace and comments. If it meets an outer doc comment, it
// returns the doc attribute trees for the comment.
func (l *lexer) skip() ([]Tree, error) {
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.off++

		case c == '/' && l.peek(1) == '/':
			start := l.off
			end := start
			for end < len(l.src) && l.src[end] != '\n' {
				end++
			}
			l.off = end
			text := strings.TrimSuffix(string(l.src[start:end]), "\r")
			if strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////") {
				return l.doc(start, end, text, text[3:]), nil
			}

		case c == '/' && l.peek(1) == '*':
			start := l.off
			depth := 0
			for {
				if l.off >= len(l.src) {
					return nil, l.errorf(start, "unterminated block comment")
				}
				if l.src[l.off] == '/' && l.peek(1) == '*' {
					depth++
					l.off += 2
					continue
				}
				if l.src[l.off] == '*' && l.peek(1) == '/' {
					depth--
					l.off += 2
					if depth == 0 {
						break
					}
					continue
				}
				l.off++
			}
			text := string(l.src[start:l.off])
			if strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/" {
				return l.doc(start, l.off, text, text[3:len(text)-2]), nil
			}

		default:
			return nil, nil
		}
	}
	return nil, nil
}

// doc builds "#[doc = content]" trees for a doc comment.
func (l *lexer) doc(start, end int, sugar, content string) []Tree {
	pos, endPos := l.pos(start), l.pos(end)
	return []Tree{
		{Kind: Punct, Text: "#", pos: pos, end: endPos},
		{
			Kind:  Group,
			Delim: Bracket,
			Sugar: sugar,
			Trees: []Tree{
				{Kind: Ident, Text: "doc", pos: pos, end: endPos},
				{Kind: Punct, Text: "=", pos: pos, end: endPos},
				{Kind: Literal, Text: Quote(content), pos: pos, end: endPos},
			},
			pos: pos,
			end: endPos,
		},
	}
}

// puncts are multi-character operators, longest first. Operators starting
// with "<" or ">" are excluded because they may close generics.
var puncts = []string{
	"...", "..=",
	"::", "->", "=>", "==", "!=", "&&", "||", "..",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=",
}

const punctChars = "+-*/%^!&|=<>@.,;:#$?~\\"

// token reads a single non-group token.
func (l *lexer) token() (Tree, error) {
	start := l.off
	c := l.src[l.off]

	switch {
	case c == '\'':
		return l.quote()

	case c == '"':
		if err := l.quoted(start, '"'); err != nil {
			return Tree{}, err
		}
		return l.literal(start), nil

	case c >= '0' && c <= '9':
		l.number()
		return l.literal(start), nil

	case strings.IndexByte(punctChars, c) >= 0:
		for _, op := range puncts {
			if strings.HasPrefix(string(l.src[l.off:min(l.off+len(op), len(l.src))]), op) {
				l.off += len(op)
				return l.make(Punct, start), nil
			}
		}
		l.off++
		tree := l.make(Punct, start)
		if c == '<' || c == '>' {
			next := l.peek(0)
			tree.Joint = next == '<' || next == '>' || next == '='
		}
		return tree, nil
	}

	r, _ := utf8.DecodeRune(l.src[l.off:])
	if !isIdentStart(r) {
		return Tree{}, l.errorf(start, "unknown start of token: %q", r)
	}
	return l.ident()
}

func (l *lexer) make(kind Kind, start int) Tree {
	return Tree{
		Kind: kind,
		Text: string(l.src[start:l.off]),
		pos:  l.pos(start),
		end:  l.pos(l.off),
	}
}

// literal finishes a literal by reading its suffix.
func (l *lexer) literal(start int) Tree {
	l.identChars()
	return l.make(Literal, start)
}

func (l *lexer) ident() (Tree, error) {
	start := l.off

	// Raw identifier
	if l.src[l.off] == 'r' && l.peek(1) == '#' {
		if r, _ := utf8.DecodeRune(l.src[min(l.off+2, len(l.src)):]); isIdentStart(r) {
			l.off += 2
			l.identChars()
			return l.identTree(start), nil
		}
	}

	l.identChars()
	prefix := string(l.src[start:l.off])

	// Prefixed literals: b'x', b"..", c"..", r"..", r#".."#, br"..", cr"..".
	switch prefix {
	case "b":
		if l.peek(0) == '\'' {
			l.off++
			if err := l.charBody(start); err != nil {
				return Tree{}, err
			}
			return l.literal(start), nil
		}
		fallthrough
	case "c":
		if l.peek(0) == '"' {
			if err := l.quoted(start, '"'); err != nil {
				return Tree{}, err
			}
			return l.literal(start), nil
		}
	case "r", "br", "cr":
		if l.peek(0) == '"' || l.peek(0) == '#' {
			if err := l.raw(start); err != nil {
				return Tree{}, err
			}
			return l.literal(start), nil
		}
	}
	return l.identTree(start), nil
}

func (l *lexer) identTree(start int) Tree {
	tree := l.make(Ident, start)
	tree.Text = norm.NFC.String(tree.Text)
	return tree
}

func (l *lexer) identChars() {
	for l.off < len(l.src) {
		r, size := utf8.DecodeRune(l.src[l.off:])
		if !isIdentContinue(r) {
			return
		}
		l.off += size
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// quote reads a character literal or a lifetime.
func (l *lexer) quote() (Tree, error) {
	start := l.off
	l.off++ // '

	r, size := utf8.DecodeRune(l.src[l.off:])
	if isIdentStart(r) && l.peek(size) != '\'' {
		// 'a, 'static
		l.identChars()
		return l.make(Lifetime, start), nil
	}

	if err := l.charBody(start); err != nil {
		return Tree{}, err
	}
	return l.literal(start), nil
}

// charBody reads the rest of a character literal after the opening quote.
func (l *lexer) charBody(start int) error {
	if l.off >= len(l.src) {
		return l.errorf(start, "unterminated character literal")
	}
	if l.src[l.off] == '\\' {
		l.off++
		if l.peek(0) == 'u' && l.peek(1) == '{' {
			for l.off < len(l.src) && l.src[l.off] != '}' {
				l.off++
			}
		}
	}
	_, size := utf8.DecodeRune(l.src[l.off:])
	l.off += size
	for l.off < len(l.src) && l.src[l.off] != '\'' && l.src[l.off] != '\n' {
		l.off++
	}
	if l.off >= len(l.src) || l.src[l.off] != '\'' {
		return l.errorf(start, "unterminated character literal")
	}
	l.off++
	return nil
}

// quoted reads a string literal starting at the quote character.
func (l *lexer) quoted(start int, quote byte) error {
	l.off++ // opening quote
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case '\\':
			l.off += 2
		case quote:
			l.off++
			return nil
		default:
			l.off++
		}
	}
	return l.errorf(start, "unterminated double quote string")
}

// raw reads a raw string literal starting at the hashes or the quote after
// its prefix.
func (l *lexer) raw(start int) error {
	hashes := 0
	for l.peek(0) == '#' {
		hashes++
		l.off++
	}
	if l.peek(0) != '"' {
		return l.errorf(start, "found invalid character; only `#` is allowed in raw string delimitation")
	}
	l.off++

	closing := "\"" + strings.Repeat("#", hashes)
	idx := strings.Index(string(l.src[l.off:]), closing)
	if idx < 0 {
		return l.errorf(start, "unterminated raw string")
	}
	l.off += idx + len(closing)
	return nil
}

// number reads a numeric literal without its suffix.
func (l *lexer) number() {
	hex := l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X')
	l.identChars()

	if hex {
		return
	}

	// Fraction: "1.5" but not "1..2" or "1.foo()".
	if l.peek(0) == '.' && l.peek(1) >= '0' && l.peek(1) <= '9' {
		l.off++
		l.identChars()
	}

	// Signed exponent: "1e-5"
	if last := l.src[l.off-1]; (last == 'e' || last == 'E') && (l.peek(0) == '+' || l.peek(0) == '-') && l.peek(1) >= '0' && l.peek(1) <= '9' {
		l.off++
		l.identChars()
	}
}
