package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
	"github.com/ardnew/adcopy/pkg"
)

// varsEnv is the key of the environment variable listing vars files.
const varsEnv = "vars"

type varsConfig struct {
	Var    map[string]string `help:"Define a variable (repeatable)."                  mapsep:"none" placeholder:"NAME=VALUE"   short:"V"`
	File   []string          `help:"Read variables from a YAML or JSON file."        name:"vars-file" placeholder:"PATH" sep:"none" short:"f" type:"existingfile"`
	Strict bool              `default:"true"  help:"Fail on undefined variables." negatable:""`
}

func (varsConfig) vars() kong.Vars {
	return kong.Vars{
		"varsEnv": pkg.EnvVar(varsEnv),
	}
}

func (varsConfig) group() kong.Group {
	var group kong.Group

	group.Key = "vars"
	group.Title = "Variable options"
	group.Description = "Files are also read from the path list in $" +
		pkg.EnvVar(varsEnv) + "."

	return group
}

// files returns the vars files to read, in decreasing precedence: explicit
// --vars-file flags, then existing files listed in the environment.
func (f varsConfig) files() []string {
	list := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(os.Getenv(pkg.EnvVar(varsEnv)))...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(f.File...),
		mung.WithFilter(isFile),
	).String()

	return filepath.SplitList(list)
}

// load reads every vars file and overlays the --var definitions. Earlier
// files take precedence over later ones, like entries in $PATH.
func (f varsConfig) load(ctx context.Context) (map[string]string, error) {
	files := f.files()
	sets := make([]map[string]string, 0, len(files)+1)

	for _, path := range slices.Backward(files) {
		set, err := readVars(ctx, path)
		if err != nil {
			return nil, err
		}

		sets = append(sets, set)
	}

	return lang.MergeVars(append(sets, f.Var)...), nil
}

func (f varsConfig) engine(ctx context.Context) (*lang.Engine, error) {
	vars, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "variables loaded",
		slog.Int("count", len(vars)),
		slog.Bool("strict", f.Strict),
	)

	return newEngine(vars, f.Strict), nil
}

func readVars(ctx context.Context, path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, lang.ErrVars.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	vars, err := lang.ParseVars(ctx, file)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("file", path))
	}

	log.TraceContext(ctx, "read variables",
		slog.String("file", path),
		slog.Int("count", len(vars)),
	)

	return vars, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
