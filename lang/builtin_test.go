package lang

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestLookupBuiltin(t *testing.T) {
	tests := []struct {
		name string
		want Builtin
		ok   bool
	}{
		{"lower", BuiltinLower, true},
		{"upper", BuiltinUpper, true},
		{"variants", BuiltinVariants, true},
		{"combinations", BuiltinCombinations, true},
		{"UPPER", 0, false},
		{"concat", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupBuiltin(tt.name)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestBuiltin_Signature(t *testing.T) {
	want := []string{
		"lower(text)",
		"upper(text)",
		"variants(template, subst...)",
		"combinations(template, subst...)",
	}

	var got []string
	for b := range Builtins() {
		got = append(got, b.Signature())

		if b.Doc() == "" {
			t.Errorf("expected doc for %s", b)
		}
	}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuiltin_Call_Arity(t *testing.T) {
	tests := []struct {
		b    Builtin
		args []string
		ok   bool
	}{
		{BuiltinLower, nil, false},
		{BuiltinLower, []string{"A"}, true},
		{BuiltinLower, []string{"A", "B"}, false},
		{BuiltinUpper, []string{}, false},
		{BuiltinUpper, []string{"a"}, true},
		{BuiltinVariants, []string{"{}"}, false},
		{BuiltinVariants, []string{"{}", "a"}, true},
		{BuiltinCombinations, []string{"{}"}, false},
		{BuiltinCombinations, []string{"{}", "a", "b", "c", "d"}, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.b, len(tt.args)), func(t *testing.T) {
			_, err := tt.b.Call(tt.args)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.ok && !errors.Is(err, errArity) {
				t.Errorf("expected arity error, got %v", err)
			}
		})
	}
}

func TestVariants_OnePerSubstitutionInOrder(t *testing.T) {
	for n := 1; n <= 6; n++ {
		subst := make([]string, n)
		for i := range subst {
			subst[i] = fmt.Sprintf("s%d", i)
		}

		got, err := BuiltinVariants.Call(append([]string{"<{}>"}, subst...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(got.Items) != n {
			t.Fatalf("expected %d items, got %d", n, len(got.Items))
		}

		for i, s := range got.Items {
			if want := "<" + subst[i] + ">"; s != want {
				t.Errorf("item %d: expected %q, got %q", i, want, s)
			}
		}
	}
}

func TestCombinations_CountAndOrder(t *testing.T) {
	got, err := BuiltinCombinations.Call([]string{"{}", "a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c", "a b", "a c", "b c", "a b c"}
	if !slices.Equal(got.Items, want) {
		t.Errorf("expected %v, got %v", want, got.Items)
	}

	for n := 1; n <= 10; n++ {
		args := append([]string{"x{}"}, strings.Split(strings.Repeat("w,", n-1)+"w", ",")...)

		v, err := BuiltinCombinations.Call(args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := 1<<n - 1; len(v.Items) != want {
			t.Errorf("n=%d: expected %d items, got %d", n, want, len(v.Items))
		}
	}
}

func TestTemplateMarker(t *testing.T) {
	tests := []struct {
		template string
		markers  int64
	}{
		{"no marker", 0},
		{"{} and {}", 2},
		{"{{}}", 1},
		{"{ }", 0},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			err := checkTemplate(tt.template)
			if tt.markers == 1 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}

				return
			}

			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("expected *Error, got %v", err)
			}

			if n, _ := le.Lookup("markers"); n.Int64() != tt.markers {
				t.Errorf("expected markers=%d, got %v", tt.markers, n)
			}
		})
	}
}

func TestChoose(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	tests := []struct {
		r    int
		want []string
	}{
		{0, nil},
		{1, []string{"a", "b", "c", "d"}},
		{2, []string{"ab", "ac", "ad", "bc", "bd", "cd"}},
		{3, []string{"abc", "abd", "acd", "bcd"}},
		{4, []string{"abcd"}},
		{5, nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.r), func(t *testing.T) {
			var got []string
			for pick := range choose(items, tt.r) {
				got = append(got, strings.Join(pick, ""))
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	var n int
	for range choose(items, 2) {
		if n++; n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("expected early stop after 2, got %d", n)
	}
}

func TestCombinations_NoLimit(t *testing.T) {
	const n = 17 // above the preallocated capacity

	args := append([]string{"{}"}, strings.Split(strings.Repeat("w,", n-1)+"w", ",")...)

	v, err := BuiltinCombinations.Call(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := 1<<n - 1; v.Len() != want {
		t.Errorf("expected %d items, got %d", want, v.Len())
	}
}
