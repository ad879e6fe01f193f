package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/adcopy/cli/cmd"
	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
	"github.com/ardnew/adcopy/pkg"
)

// CLI is the top-level command-line interface for adcopy.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Vars  varsConfig  `embed:"" group:"vars"`

	Eval   cmd.Eval   `cmd:"" default:"withargs" help:"Evaluate an expression (default)"`
	Tokens cmd.Tokens `cmd:""                    help:"Print the tokens of an expression"`
	Funcs  cmd.Funcs  `cmd:""                    help:"List built-in functions"`
	Repl   cmd.Repl   `cmd:""                    help:"Start an interactive session"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the adcopy CLI with the given context and arguments.
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

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + configExt,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Vars.vars()).
		CloneWith(cmd.Vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Vars.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+configExt),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	engine, err := cli.Vars.engine(ctx)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithEngine(ctx, engine)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// newEngine is separate from Run so tests can build the same engine a
// command would see.
func newEngine(vars map[string]string, strict bool) *lang.Engine {
	return lang.New(
		lang.WithVars(vars),
		lang.WithRaiseOnMiss(strict),
		lang.WithLogger(log.Default()),
	)
}
