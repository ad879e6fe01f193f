// Package lang implements the adcopy expression language: a single call of
// a built-in function whose arguments expand into one or more lines of ad
// copy.
//
// # Grammar
//
//	command : IDENTIFIER '(' args ')'
//	args    : arg | arg ',' args
//	arg     : IDENTIFIER | SUBSTITUTION_ID | STRING
//
// An IDENTIFIER argument is passed through as its own text. A
// SUBSTITUTION_ID such as {brand} is replaced by the value of the variable
// named between the braces. A STRING is delimited by matching single or
// double quotes; every {name} inside it whose name is purely alphabetic is
// replaced the same way, and any other brace text is kept as written.
//
// A quote that matches the opening quote ends the string unless the source
// character right before it is a backslash. The backslash is kept in the
// resulting text.
//
// # Built-in functions
//
//	lower(text)                     lowercase text
//	upper(text)                     uppercase text
//	variants(template, subst...)    one line per subst, replacing {} in template
//	combinations(template, subst...) one line per non-empty subset of subst
//
// The template given to variants and combinations must contain the marker
// {} exactly once, and at least one subst must follow it: a template alone
// is an invalid usage, not an empty list.
//
// combinations has no limit on the number of substitutions. N of them
// produce 2^N-1 lines, all held in memory before any --where filter runs.
//
// # Example
//
//	e := lang.New(lang.WithVars(map[string]string{"vendor": "Apple"}))
//
//	v, err := e.Parse(ctx, `variants("buy {vendor} {}", phone, laptop)`)
//	// v.Strings() == []string{"buy Apple phone", "buy Apple laptop"}
//
// Parsing and evaluation are a single pass. Tokens are read on demand, and
// each argument is resolved as soon as it is read, so the first problem
// encountered from left to right is the one reported.
//
// Expressions are a single line. Only spaces and tabs separate tokens; any
// other whitespace, including a trailing newline, is an illegal character.
package lang
