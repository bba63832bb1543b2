package enumnewtypeinternal

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
)

var Version string

// Main is the main entry point for enumnewtype. It is used by the
// command-line tool directly.
//
// ctx can cancel processing between files. wd is the path of the working
// directory; relative file paths are resolved against it. opts controls the
// expansion. suffix replaces the ".rs" extension of each input file to name
// its output file. files are the Rust source files to process.
//
// It returns a map of output file paths to their contents. Files without
// annotated items produce no output. If any error occurs, it returns a
// non-nil error holding the diagnostics of all files.
func Main(ctx context.Context, wd string, opts Options, suffix string, files []string) (map[string][]byte, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	log := opts.Logger.Sugar()

	fset := token.NewFileSet()
	outs := make(map[string][]byte)
	var errs error

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "interrupted")
		}

		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			errs = codefmt.Combine(errs, errors.Wrapf(err, "failed to read %s", file))
			continue
		}

		e, err := New(fset, file, src, opts)
		if err != nil {
			errs = codefmt.Combine(errs, err)
			continue
		}

		if err := e.Build(); err != nil {
			errs = codefmt.Combine(errs, err)
			continue
		}

		code := e.Generate()
		if len(code) == 0 {
			log.Debugw("no annotated items", "file", file)
			continue
		}

		out := OutputPath(file, suffix)
		if rel, err := filepath.Rel(wd, out); err == nil && !strings.HasPrefix(rel, "..") {
			out = rel
		}
		outs[out] = append([]byte(Header()), code...)
		log.Infow("expanded", "file", file, "items", e.Len(), "output", out)
	}
	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// OutputPath returns the path of the output file for a Rust source file.
func OutputPath(file, suffix string) string {
	return strings.TrimSuffix(file, ".rs") + suffix
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	list := slices.DeleteFunc(codefmt.Flatten(errs), func(err error) bool {
		return err == nil
	})

	// Sort errors by message, which starts with the position if any.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return codefmt.Combine(list...)
}
