package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/curly/cli/cmd"
	"github.com/ardnew/curly/pkg"
)

// CLI is the top-level command-line interface for curly.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template against a data context"`
	Check  cmd.Check  `cmd:""                    help:"Parse a template and report syntax errors"`
	AST    cmd.AST    `cmd:""                    help:"Print the parsed syntax tree of a template" name:"ast"`
	Repl   cmd.Repl   `cmd:""                    help:"Render templates interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the curly CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// The provider is resolved when a command runs, after ctx has been
	// extended with the parsed kong context below.
	provider := func() context.Context { return ctx }

	parser, err := kong.New(&cli, options(provider, exit, configFilePath, vars)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(&cli)
}

// options returns the kong parser options shared by [Run] and tests.
func options(
	provider func() context.Context,
	exit func(code int),
	configFilePath string,
	vars kong.Vars,
) []kong.Option {
	var cli CLI

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(provider),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, trimExt(configFilePath)+".json"),
		kong.Configuration(resolve, configFilePath),
		vars,
	}
}
