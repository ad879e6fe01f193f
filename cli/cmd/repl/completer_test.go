package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
)

func testModel(t *testing.T, vars map[string]string) model {
	t.Helper()

	e := lang.New(lang.WithVars(vars))

	return newModel(t.Context(), e, NewHistory(), log.Logger{})
}

func setInput(m *model, s string) {
	m.input.SetValue(s)
	m.input.SetCursor(len(s))
	refreshMatches(m, false)
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "low", 3, "low", 0, 3},
		{"after_paren", "variants(ph", 11, "ph", 9, 11},
		{"after_brace", "lower({br", 9, "br", 7, 9},
		{"after_comma", "f(a, bc", 7, "bc", 5, 7},
		{"in_string", `f("buy pho`, 10, "pho", 7, 10},
		{"underscore_digits", "a_1", 3, "a_1", 0, 3},
		{"empty_at_boundary", "f(", 2, "", 2, 2},
		{"mid_word", "combinations", 3, "combinations", 0, 12},
		{"cursor_past_end", "up", 9, "up", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected (%q, %d, %d), got (%q, %d, %d)",
					tt.wantWord, tt.wantStart, tt.wantEnd, word, start, end)
			}
		})
	}
}

func TestCompletionAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  completion
	}{
		{"command", "upp", completeFunc},
		{"leading_space", "  upp", completeFunc},
		{"argument", "lower(ab", completeNone},
		{"placeholder_arg", "lower({ab", completeVar},
		{"placeholder_in_string", `variants("{br`, completeVar},
		{"plain_in_string", `variants("bu`, completeNone},
		{"after_closed_string", `variants("x", y`, completeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, start, _ := wordBounds(tt.input, len(tt.input))
			if got := completionAt(tt.input, start); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestInString(t *testing.T) {
	tests := []struct {
		prefix string
		want   bool
	}{
		{`f(`, false},
		{`f("a`, true},
		{`f("a"`, false},
		{`f('a`, true},
		{`f('a"`, true},
		{`f("a\"`, true},
		{`f("a\"b"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := inString(tt.prefix); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	vars := map[string]string{"brand": "Acme", "bingo": "B", "city": "Austin"}

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string // nil means no matches
	}{
		{name: "function", input: "vari", want: []string{"variants"}},
		{name: "no_function", input: "zzz"},
		{name: "empty", input: ""},
		{name: "variable", input: "lower({bi", want: []string{"bingo"}},
		{name: "all_variables", input: "lower({", want: []string{"bingo", "brand", "city"}},
		{name: "argument", input: "lower(vari"},
		{name: "command", mode: modeCtrl, input: "fun", want: []string{"funcs"}},
		{name: "command_argument", mode: modeCtrl, input: "set fun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, vars)
			m.mode = tt.mode
			setInput(&m, tt.input)

			var got []string
			for _, match := range m.matches {
				got = append(got, match.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	m := testModel(t, nil)
	setInput(&m, "r")

	if len(m.matches) == 0 {
		t.Fatal("expected matches for \"r\"")
	}

	if bar := renderCandidateBar(m.matches, -1, false, 80); bar == "" {
		t.Error("expected a candidate bar")
	}

	if bar := renderCandidateBar(m.matches, -1, false, 0); bar != "" {
		t.Errorf("expected empty bar for zero width, got %q", bar)
	}
}
