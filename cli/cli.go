package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/px/log"
	"github.com/ardnew/px/module"
	"github.com/ardnew/px/pipeline"
	"github.com/ardnew/px/pkg"
	"github.com/ardnew/px/symbol"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// CLI is the top-level command-line interface for px.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	ShowError bool             `help:"Print row errors to stderr."                         short:"e"`
	ShowBool  bool             `help:"Print boolean results instead of filtering rows."    short:"b"`
	Symbols   []string         `help:"User symbol file(s) (YAML, TOML, JSON, or .env)."    env:"PX_SYMBOL_FILEPATHS" placeholder:"PATH" sep:"none"`
	Seed      seed             `help:"Seed for the random library."                        placeholder:"N"`
	Version   kong.VersionFlag `help:"Print version and exit."                             short:"V"`

	Expr []string `arg:"" help:"Pipeline stages, applied in order to each input row." name:"expr"`
}

// Streams holds the input and output streams of a run.
type Streams struct {
	In  *pipeline.Input
	Out io.Writer
	Err io.Writer
}

// Std returns the standard streams of the process.
func Std() Streams {
	return Streams{In: pipeline.FileInput(os.Stdin), Out: os.Stdout, Err: os.Stderr}
}

// Run parses args and runs the resulting pipeline over the input stream.
// The exit function is called by help and version flags.
//
// A malformed command line is an [ErrUsage] error. Pass the result to
// [ExitCode] to obtain the process exit code.
func Run(
	ctx context.Context,
	exit func(code int),
	streams Streams,
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{"version": pkg.Name + " " + pkg.Version()}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	// Apply logger flags before kong reports any parse errors.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Writers(streams.Out, streams.Err),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:      true,
				Summary:      true,
				FlagsLast:    false,
				NoAppSummary: false,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml", configFilePath+".yml"),
		vars,
	)
	if err != nil {
		return err
	}

	_, err = parser.Parse(args)
	if err != nil {
		fmt.Fprintf(streams.Err, "%s: error: %v\n", pkg.Name, err)

		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}

		return ErrUsage.Wrap(err)
	}

	logger := cli.Log.start(ctx, streams.Err)

	defer cli.Pprof.start(ctx, logger)()

	return cli.run(ctx, streams, logger)
}

// run builds the symbol table, compiles the stages, and executes them.
func (c *CLI) run(ctx context.Context, streams Streams, logger log.Logger) error {
	opts := []symbol.Option{
		symbol.WithFiles(symbolFiles(c.Symbols)...),
		symbol.WithLogger(logger),
	}

	if c.Seed.set {
		opts = append(opts, symbol.WithSeed(c.Seed.value))
	}

	table, err := symbol.NewBuilder(opts...).Build(ctx)
	if err != nil {
		return err
	}

	popts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithShowError(c.ShowError),
		pipeline.WithShowBool(c.ShowBool),
		pipeline.WithResolver(
			module.NewResolver(module.Standard(), module.WithLogger(logger)),
		),
	}

	p, err := pipeline.Compile(ctx, table, c.Expr, popts...)
	if err != nil {
		return err
	}

	logger.DebugContext(
		ctx,
		"run",
		slog.Int("stages", len(p.Stages)),
		slog.Int("symbols", table.Len()),
		slog.Bool("interactive", streams.In.Interactive()),
	)

	rep := pipeline.NewReporter(streams.Out, streams.Err, popts...)

	return pipeline.NewExecutor(p, rep, popts...).Run(ctx, streams.In)
}

// seed is an optional random seed, set only when given on the command line
// or in a configuration file.
type seed struct {
	value uint64
	set   bool
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *seed) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(strings.TrimSpace(string(text)), 0, 64)
	if err != nil {
		return err
	}

	s.value, s.set = v, true

	return nil
}

// symbolFiles splits each entry on the OS path list separator, so that
// both repeated flags and a PX_SYMBOL_FILEPATHS list are accepted.
func symbolFiles(entries []string) []string {
	var files []string

	for _, entry := range entries {
		for _, path := range filepath.SplitList(entry) {
			if path != "" {
				files = append(files, path)
			}
		}
	}

	return files
}
