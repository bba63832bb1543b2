package codefmt

import (
	"bytes"
	"go/token"
	"io"
)

// Indent is the indentation unit of generated code.
const Indent = "    "

// Writer is a writer for generated code. It indents every line after a
// newline by its prefix and depth.
type Writer struct {
	w      io.Writer
	fmt    Formatter
	prefix string
	depth  int
	bol    *bool
}

// NewWriter creates a new [Writer]. The first line written is never indented
// so that the output can continue an existing line.
func NewWriter(w io.Writer, fset *token.FileSet) *Writer {
	bol := false
	return &Writer{
		w:   w,
		fmt: New(fset),
		bol: &bol,
	}
}

// FileSet returns the file set used to format positions.
func (w *Writer) FileSet() *token.FileSet {
	return w.fmt.Fset
}

// Write implements io.Writer. Each non-empty line is prefixed with the
// indentation of the writer.
func (w *Writer) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if *w.bol && line[0] != '\n' {
			buf.WriteString(w.prefix)
			for range w.depth {
				buf.WriteString(Indent)
			}
		}
		buf.Write(line)
		*w.bol = line[len(line)-1] == '\n'
	}
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Sprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.Write([]byte(w.fmt.Sprintf(format, args...)))
}

// Indented copies the writer with one more level of indentation. Both writers
// share the line state.
func (w *Writer) Indented() *Writer {
	return &Writer{
		w:      w.w,
		fmt:    w.fmt,
		prefix: w.prefix,
		depth:  w.depth + 1,
		bol:    w.bol,
	}
}

// WithPrefix copies the writer and sets a prefix put before the indentation
// of every line but the first one.
func (w *Writer) WithPrefix(prefix string) *Writer {
	return &Writer{
		w:      w.w,
		fmt:    w.fmt,
		prefix: prefix,
		depth:  w.depth,
		bol:    w.bol,
	}
}

// WithBuf copies the writer and sets a new write buffer.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	bol := false
	return &Writer{
		w:      buf,
		fmt:    w.fmt,
		prefix: w.prefix,
		depth:  w.depth,
		bol:    &bol,
	}
}
