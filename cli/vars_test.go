package cli

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/pkg"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestVarsConfigLoad(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "brand: First\nonly_first: 1\n")
	second := writeFile(t, dir, "second.json", `{"brand": "Second", "only_second": true}`)
	env := writeFile(t, dir, "env.yaml", "brand: Env\nonly_env: e\n")

	t.Setenv(pkg.EnvVar(varsEnv), env)

	tests := []struct {
		name string
		cfg  varsConfig
		want map[string]string
	}{
		{
			name: "env_only",
			want: map[string]string{"brand": "Env", "only_env": "e"},
		},
		{
			name: "files_before_env",
			cfg:  varsConfig{File: []string{first, second}},
			want: map[string]string{
				"brand":       "First",
				"only_first":  "1",
				"only_second": "true",
				"only_env":    "e",
			},
		},
		{
			name: "var_overrides_files",
			cfg: varsConfig{
				File: []string{second},
				Var:  map[string]string{"brand": "Flag"},
			},
			want: map[string]string{
				"brand":       "Flag",
				"only_second": "true",
				"only_env":    "e",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.load(t.Context())
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}

			if !maps.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVarsConfigLoad_InvalidFile(t *testing.T) {
	t.Setenv(pkg.EnvVar(varsEnv), "")

	bad := writeFile(t, t.TempDir(), "bad.yaml", "brand: [a, b]\n")

	_, err := varsConfig{File: []string{bad}}.load(t.Context())
	if !errors.Is(err, lang.ErrVars) {
		t.Fatalf("expected ErrVars, got %v", err)
	}

	var lerr *lang.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *lang.Error, got %T", err)
	}

	if v, ok := lerr.Lookup("file"); !ok || v.String() != bad {
		t.Errorf("expected file=%s, got %v", bad, v)
	}
}

func TestVarsConfigEngine(t *testing.T) {
	t.Setenv(pkg.EnvVar(varsEnv), "")

	tests := []struct {
		name   string
		strict bool
		want   string
		err    error
	}{
		{name: "strict", strict: true, err: lang.ErrUnknownVariable},
		{name: "lenient", strict: false, want: "JIMMY "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := varsConfig{
				Var:    map[string]string{"jo": "JiMMY"},
				Strict: tt.strict,
			}

			e, err := cfg.engine(t.Context())
			if err != nil {
				t.Fatal(err)
			}

			got, err := e.Parse(t.Context(), `upper("{jo} {missing}")`)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}

			if got.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.String())
			}
		})
	}
}
