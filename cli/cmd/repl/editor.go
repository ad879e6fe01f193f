package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
)

const defaultEditor = "vi"

// editVarsCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop over the session variables. It writes the variables as YAML to a
// temp file, opens the user's editor and decodes the result. On a decode
// error the user is prompted to re-edit; declining returns
// [ErrEditDeclined].
type editVarsCommand struct {
	vars    map[string]string
	ctxFunc func() context.Context
	newVars map[string]string
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editVarsCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editVarsCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editVarsCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file leaves newVars
// nil, which callers treat as a cancelled edit.
func (c *editVarsCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := formatVars(ctx, c.vars)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(os.TempDir(), "adcopy-vars-*.yaml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		vars, parseErr := lang.ParseVars(ctx, bytes.NewReader(data))
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.newVars = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = data
	}
}

// formatVars renders vars as a YAML mapping sorted by name. Every value is
// written as a string so that decoding it yields the same text.
func formatVars(ctx context.Context, vars map[string]string) ([]byte, error) {
	items := make(yaml.MapSlice, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		items = append(items, yaml.MapItem{Key: k, Value: vars[k]})
	}

	if len(items) == 0 {
		return []byte("# name: value\n"), nil
	}

	return yaml.MarshalContext(ctx, items)
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
