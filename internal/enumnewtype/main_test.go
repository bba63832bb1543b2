package enumnewtypeinternal_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enumnewtypeinternal "github.com/Robbepop/enum-newtype/internal/enumnewtype"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir
}

func TestMainExpandsFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"op.rs":    "#[enum_newtype(name = V)]\nenum Op { Nop }\n",
		"plain.rs": "fn main() {}\n",
	})

	outs, err := enumnewtypeinternal.Main(context.Background(), dir, enumnewtypeinternal.Options{}, ".expanded.rs", []string{"op.rs", "plain.rs"})
	require.NoError(t, err)

	require.Len(t, outs, 1)
	code, ok := outs["op.expanded.rs"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(code), "// Code generated by enumnewtype"))
	assert.Contains(t, string(code), "enum Op {\n    Nop(<Self as V>::Nop),\n}\n")
}

func TestMainCombinesErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.rs": "#[enum_newtype(name = V)]\nstruct S;\n",
		"b.rs": "#[enum_newtype]\nenum E {}\n",
	})

	_, err := enumnewtypeinternal.Main(context.Background(), dir, enumnewtypeinternal.Options{}, ".expanded.rs", []string{"b.rs", "a.rs", "missing.rs"})
	require.Error(t, err)

	lines := strings.Split(err.Error(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a.rs:2:1: cannot use `#enum_newtype` on `struct` types", lines[0])
	assert.Equal(t, "b.rs:1:1: cannot find valid `name` parameter", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "failed to read missing.rs"))
}

func TestMainCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := enumnewtypeinternal.Main(ctx, t.TempDir(), enumnewtypeinternal.Options{}, ".expanded.rs", []string{"a.rs"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "src/lib.expanded.rs", enumnewtypeinternal.OutputPath("src/lib.rs", ".expanded.rs"))
	assert.Equal(t, "build.gen.rs", enumnewtypeinternal.OutputPath("build", ".gen.rs"))
}

func TestHeader(t *testing.T) {
	defer func(v string) { enumnewtypeinternal.Version = v }(enumnewtypeinternal.Version)

	enumnewtypeinternal.Version = ""
	assert.Equal(t, "// Code generated by enumnewtype. DO NOT EDIT.\n", enumnewtypeinternal.Header())

	enumnewtypeinternal.Version = "v0.1.0"
	assert.Equal(t, "// Code generated by enumnewtype@v0.1.0. DO NOT EDIT.\n", enumnewtypeinternal.Header())
}
