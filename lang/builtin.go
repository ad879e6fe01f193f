package lang

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Marker is the placeholder in a template argument that is replaced by each
// substitution.
const Marker = "{}"

// Builtin identifies one of the functions an expression can call.
type Builtin uint8

const (
	BuiltinLower Builtin = iota
	BuiltinUpper
	BuiltinVariants
	BuiltinCombinations
)

type builtinSpec struct {
	name     string
	params   []string
	variadic bool // last param repeats
	minArgs  int
	maxArgs  int // -1 is unbounded
	doc      string
	call     func(args []string) (Value, error)
}

var builtins = [...]builtinSpec{
	BuiltinLower: {
		name:    "lower",
		params:  []string{"text"},
		minArgs: 1,
		maxArgs: 1,
		doc:     "convert text to lower case",
		call:    func(args []string) (Value, error) { return Scalar(foldCase(cases.Lower, args[0])), nil },
	},
	BuiltinUpper: {
		name:    "upper",
		params:  []string{"text"},
		minArgs: 1,
		maxArgs: 1,
		doc:     "convert text to upper case",
		call:    func(args []string) (Value, error) { return Scalar(foldCase(cases.Upper, args[0])), nil },
	},
	BuiltinVariants: {
		name:     "variants",
		params:   []string{"template", "subst"},
		variadic: true,
		minArgs:  2,
		maxArgs:  -1,
		doc:      "one line per subst, each replacing {} in template",
		call:     variants,
	},
	// 2^N-1 results for N substitutions, with no limit on N.
	BuiltinCombinations: {
		name:     "combinations",
		params:   []string{"template", "subst"},
		variadic: true,
		minArgs:  2,
		maxArgs:  -1,
		doc:      "one line per non-empty combination of subst, space separated, replacing {} in template",
		call:     combinations,
	},
}

// LookupBuiltin returns the builtin with the given name.
func LookupBuiltin(name string) (Builtin, bool) {
	for b := range Builtins() {
		if b.spec().name == name {
			return b, true
		}
	}

	return 0, false
}

// Builtins returns an iterator over every builtin in declaration order.
func Builtins() iter.Seq[Builtin] {
	return func(yield func(Builtin) bool) {
		for i := range builtins {
			if !yield(Builtin(i)) {
				return
			}
		}
	}
}

func (b Builtin) spec() *builtinSpec {
	if int(b) < len(builtins) {
		return &builtins[b]
	}

	return &builtinSpec{name: "Builtin(" + strconv.Itoa(int(b)) + ")"}
}

// Name returns the name used to call b.
func (b Builtin) Name() string { return b.spec().name }

func (b Builtin) String() string { return b.Name() }

// Params returns the parameter names of b.
func (b Builtin) Params() []string { return b.spec().params }

// Variadic reports whether the last parameter of b accepts any number of
// arguments.
func (b Builtin) Variadic() bool { return b.spec().variadic }

// Doc returns a one-line description of b.
func (b Builtin) Doc() string { return b.spec().doc }

// Signature returns a call synopsis such as "variants(template, subst...)".
func (b Builtin) Signature() string {
	s := b.spec()

	params := strings.Join(s.params, ", ")
	if s.variadic {
		params += "..."
	}

	return s.name + "(" + params + ")"
}

// Call invokes b with args after checking the argument count.
func (b Builtin) Call(args []string) (Value, error) {
	s := b.spec()
	if s.call == nil {
		return Value{}, ErrInvalidFunc.With(slog.String("func", s.name))
	}

	if len(args) < s.minArgs || (s.maxArgs >= 0 && len(args) > s.maxArgs) {
		return Value{}, errArity.With(
			slog.String("want", arity(s.minArgs, s.maxArgs)),
			slog.Int("got", len(args)),
		)
	}

	return s.call(args)
}

func arity(lo, hi int) string {
	switch {
	case hi < 0:
		return strconv.Itoa(lo) + "+"
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
	}
}

// foldCase maps s with a fresh caser; casers keep state and are not safe
// for reuse across goroutines.
func foldCase(
	mk func(language.Tag, ...cases.Option) cases.Caser,
	s string,
) string {
	return mk(language.Und).String(s)
}

func checkTemplate(template string) error {
	if n := strings.Count(template, Marker); n != 1 {
		return errTemplate.With(slog.Int("markers", n))
	}

	return nil
}

func variants(args []string) (Value, error) {
	template, subst := args[0], args[1:]
	if err := checkTemplate(template); err != nil {
		return Value{}, err
	}

	out := make([]string, len(subst))
	for i, s := range subst {
		out[i] = strings.Replace(template, Marker, s, 1)
	}

	return List(out...), nil
}

// combinations builds every result before returning, so memory grows as
// 2^N for N substitutions.
func combinations(args []string) (Value, error) {
	template, subst := args[0], args[1:]
	if err := checkTemplate(template); err != nil {
		return Value{}, err
	}

	out := make([]string, 0, 1<<min(len(subst), 16)-1)

	for r := 1; r <= len(subst); r++ {
		for pick := range choose(subst, r) {
			out = append(out, strings.Replace(template, Marker, strings.Join(pick, " "), 1))
		}
	}

	return List(out...), nil
}

// choose yields every r-element combination of items, preserving the order
// of items within each combination and emitting combinations in
// lexicographic order of their indices. The yielded slice is reused.
func choose(items []string, r int) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		n := len(items)
		if r <= 0 || r > n {
			return
		}

		idx := make([]int, r)
		for i := range idx {
			idx[i] = i
		}

		pick := make([]string, r)

		for {
			for i, j := range idx {
				pick[i] = items[j]
			}

			if !yield(pick) {
				return
			}

			i := r - 1
			for i >= 0 && idx[i] == n-r+i {
				i--
			}

			if i < 0 {
				return
			}

			idx[i]++
			for j := i + 1; j < r; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
