package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/adcopy/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "vars", "set", "unset", "strict", "funcs", "edit", "clear", "quit",
}

// isWordRune reports whether r can appear in an identifier.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// wordBounds returns the identifier at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor is not
// touching an identifier.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completion is what the word at the cursor can be completed to.
type completion int

const (
	completeNone completion = iota
	completeFunc            // function name before the argument list
	completeVar             // variable name after "{"
)

// completionAt classifies the word beginning at wordStart.
func completionAt(input string, wordStart int) completion {
	if wordStart > 0 && input[wordStart-1] == '{' {
		return completeVar
	}

	if inString(input[:wordStart]) {
		return completeNone
	}

	if strings.ContainsRune(input[:wordStart], '(') {
		return completeNone
	}

	return completeFunc
}

// inString reports whether prefix ends inside a quoted string, using the
// same escape rule as the lexer: a quote preceded by a backslash does not
// close the string.
func inString(prefix string) bool {
	var (
		quote rune
		prev  rune
	)

	for _, r := range prefix {
		switch {
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote != 0 && r == quote && prev != '\\':
			quote = 0
		}

		prev = r
	}

	return quote != 0
}

// funcNames returns the names of all builtins.
func funcNames() []string {
	var names []string

	for b := range lang.Builtins() {
		names = append(names, b.Name())
	}

	return names
}

// varNames returns the sorted names of the session variables.
func varNames(e *lang.Engine) []string {
	return slices.Sorted(maps.Keys(e.Vars()))
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. An empty word has no matches, except directly
// after "{" where every variable is offered.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if m.mode == modeCtrl {
		// Only the command name itself is completed.
		if word == "" || strings.TrimSpace(input[:wordStart]) != "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		switch completionAt(input, wordStart) {
		case completeFunc:
			candidates = funcNames()

		case completeVar:
			candidates = varNames(m.engine)

			if word == "" {
				matches = make(fuzzy.Matches, len(candidates))
				for i, c := range candidates {
					matches[i] = fuzzy.Match{Str: c, Index: i}
				}

				return matches, candidates, wordStart, wordEnd
			}

		default:
			return nil, nil, wordStart, wordEnd
		}
	}

	if word == "" || len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Builtins are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	if _, ok := lang.LookupBuiltin(match.Str); ok {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
