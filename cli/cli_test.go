package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/adcopy/lang"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "adcopy-cli-test-")
	if err != nil {
		panic(err)
	}

	// Config and cache directories are resolved once per process.
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

// run calls [Run] with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	stdout := os.Stdout
	os.Stdout = w

	defer func() { os.Stdout = stdout }()

	runErr := Run(t.Context(), func(code int) {
		t.Errorf("unexpected exit with code %d", code)
	}, args...)

	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	return string(out), runErr
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default_command",
			args: []string{"lower(ACME)"},
			want: "acme\n",
		},
		{
			name: "eval_with_var",
			args: []string{"-V", "brand=Acme", "eval", `variants("{brand} {}", one, two)`},
			want: "Acme one\nAcme two\n",
		},
		{
			name: "eval_json",
			args: []string{"eval", "-o", "json", `combinations("{}", a, b)`},
			want: "[\n  \"a\",\n  \"b\",\n  \"a b\"\n]\n",
		},
		{
			name: "lenient",
			args: []string{"--no-strict", "eval", `upper("{nope}x")`},
			want: "X\n",
		},
		{
			name: "funcs_names",
			args: []string{"funcs", "--names"},
			want: "lower\nupper\nvariants\ncombinations\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "syntax", args: []string{"eval", "lower({x"}, want: lang.ErrSyntax},
		{name: "strict", args: []string{"eval", "lower({nope})"}, want: lang.ErrUnknownVariable},
		{name: "format", args: []string{"eval", "-o", "csv", "lower(x)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_InitThenEval(t *testing.T) {
	path := configPath(baseConfig) + configExt

	t.Cleanup(func() { os.Remove(path) })

	if _, err := run(t, "-V", "brand=Configured", "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	got, err := run(t, "eval", "upper({brand})")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	if want := "CONFIGURED\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got, err = run(t, "-V", "brand=Flag", "eval", "upper({brand})")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	if want := "FLAG\n"; got != want {
		t.Errorf("expected flag to override config, got %q", got)
	}
}
