package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Robbepop/enum-newtype/internal/config"
	enumnewtypeinternal "github.com/Robbepop/enum-newtype/internal/enumnewtype"
	"github.com/Robbepop/enum-newtype/internal/logger"
)

var Version = "dev"

func init() {
	enumnewtypeinternal.Version = Version
}

// errReported is returned when the error has already been printed.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintln(os.Stderr, "Hint:", hint)
			}
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "enumnewtype [flags] FILE...",
		Short: "Expand #[enum_newtype] enums in Rust source files",
		Long: `Expand enums annotated with #[enum_newtype(name = Trait)] into newtype enums.

Each FILE is expanded to a sibling file with the suffix (".expanded.rs" by
default) replacing ".rs". Files without annotated enums are left alone.

Configuration is read from .enumnewtype.yaml or .enumnewtype.toml in the
working directory and from ENUMNEWTYPE_* environment variables. Flags take
precedence.

Examples:
  enumnewtype src/op.rs             # writes src/op.expanded.rs
  enumnewtype --stdout src/op.rs    # prints the expansion
  enumnewtype -w src/*.rs           # re-expands on every change`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "failed to get working directory")
			}

			v, err := config.New(wd, configFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbose); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}

			r := &runner{
				wd:     wd,
				cfg:    cfg,
				color:  useColor(cfg.Color),
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}

			err = r.run(cmd.Context(), args)
			if !watch {
				return err
			}
			return r.watch(cmd.Context(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default: .enumnewtype.{yaml,toml} in the working directory)")
	flags.String("attribute", enumnewtypeinternal.DefaultAttribute, "name of the attribute to expand")
	flags.StringP("suffix", "o", ".expanded.rs", "suffix replacing \".rs\" for output files")
	flags.Bool("stdout", false, "print expanded code instead of writing files")
	flags.Bool("compile-errors", false, "replace failing enums by compile_error! instead of failing")
	flags.StringP("color", "c", "auto", "colorize (auto|always|never)")
	flags.Bool("json", false, "log in JSON")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.BoolVarP(&watch, "watch", "w", false, "expand again whenever a file changes")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "enumnewtype", Version)
		},
	})
	return cmd
}

// bindFlags binds command-line flags to config keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"attribute":      "attribute",
		"suffix":         "suffix",
		"stdout":         "stdout",
		"compile_errors": "compile-errors",
		"color":          "color",
		"log.json":       "json",
		"log.verbose":    "verbose",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", flag)
		}
	}
	return nil
}

// runner expands files with a loaded configuration.
type runner struct {
	wd     string
	cfg    *config.Config
	color  bool
	stdout io.Writer
	stderr io.Writer
}

// run expands files once. Diagnostics are printed to stderr.
func (r *runner) run(ctx context.Context, files []string) error {
	opts := enumnewtypeinternal.Options{
		Attribute:     r.cfg.Attribute,
		CompileErrors: r.cfg.CompileErrors,
		Logger:        logger.Logger.Desugar(),
	}

	outs, err := enumnewtypeinternal.Main(ctx, r.wd, opts, r.cfg.Suffix, files)
	if err != nil {
		message := err.Error()
		if r.color {
			message = colorize(message)
		}
		fmt.Fprintln(r.stderr, message)
		return errReported
	}

	paths := make([]string, 0, len(outs))
	for out := range outs {
		paths = append(paths, out)
	}
	slices.Sort(paths)

	for _, out := range paths {
		code := outs[out]
		if r.cfg.Stdout {
			if _, err := r.stdout.Write(code); err != nil {
				return errors.Wrap(err, "failed to write to stdout")
			}
			continue
		}

		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.wd, path)
		}
		if err := os.WriteFile(path, code, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", out)
		}
		fmt.Fprintln(r.stdout, "Generated:", out)
	}
	return nil
}
