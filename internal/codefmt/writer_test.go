package codefmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
)

func TestWriterIndented(t *testing.T) {
	var b strings.Builder
	w := codefmt.NewWriter(&b, nil)

	w.Printf("outer {\n")
	inner := w.Indented()
	inner.Printf("a;\n\n")
	inner.Indented().Printf("b;\n")
	w.Printf("}\n")

	assert.Equal(t, "outer {\n    a;\n\n        b;\n}\n", b.String())
}

func TestWriterFirstLineNotIndented(t *testing.T) {
	var b strings.Builder
	w := codefmt.NewWriter(&b, nil).WithPrefix("\t").Indented()

	w.Printf("x\ny\n")
	assert.Equal(t, "x\n\t    y\n", b.String())
}

func TestWriterWithBuf(t *testing.T) {
	var outer, inner strings.Builder
	w := codefmt.NewWriter(&outer, nil).Indented()
	w.Printf("a\n")

	w.WithBuf(&inner).Printf("b\nc\n")
	assert.Equal(t, "a\n", outer.String())
	assert.Equal(t, "b\n    c\n", inner.String())
}
