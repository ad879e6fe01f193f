package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/adcopy/lang"
)

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall reports whether the cursor is inside the argument list
// of a call, and if so the called name and the index of the argument under
// the cursor. Parentheses and commas inside quoted strings are ignored.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	var (
		openParen = -1
		argIndex  int
		quote     byte
		prev      byte
	)

	for i := 0; i < cursor; i++ {
		ch := input[i]

		switch {
		case quote != 0:
			if ch == quote && prev != '\\' {
				quote = 0
			}

		case ch == '"' || ch == '\'':
			quote = ch

		case ch == '(' && openParen == -1:
			openParen = i

		case ch == ')' && openParen != -1:
			// The call is closed; the cursor is past it.
			return functionCall{}

		case ch == ',' && openParen != -1:
			argIndex++
		}

		prev = ch
	}

	if openParen == -1 {
		return functionCall{}
	}

	head := strings.TrimRight(input[:openParen], " \t")

	name, _, _ := wordBounds(head, len(head))
	if name == "" {
		return functionCall{}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// getSignature returns the signature and parameter names of the builtin
// named funcName. The last parameter of a variadic builtin is prefixed with
// "...". It returns "" if there is no such builtin.
func getSignature(funcName string) (signature string, params []string) {
	b, ok := lang.LookupBuiltin(funcName)
	if !ok {
		return "", nil
	}

	params = append([]string(nil), b.Params()...)
	if b.Variadic() && len(params) > 0 {
		params[len(params)-1] = "..." + params[len(params)-1]
	}

	return b.Signature(), params
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	// Parse signature: "funcName(param1, param2, ...)"
	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	funcName := signature[:openParen]

	if len(params) == 0 {
		return signatureNameStyle.Render(funcName) +
			signatureStyle.Render("()")
	}

	var b strings.Builder
	b.WriteString(signatureNameStyle.Render(funcName))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		// A variadic parameter stays highlighted for every later argument.
		isVariadic := strings.HasPrefix(param, "...")

		if (isVariadic && currentArgIdx >= i) ||
			(!isVariadic && currentArgIdx == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
