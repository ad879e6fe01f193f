package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
)

// editVarsMsg is sent when editing the variables completes successfully.
type editVarsMsg struct{ vars map[string]string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editErrorMsg is sent when the edit process fails or is declined.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help               Print this cruft
  vars               List variables
  set NAME=VALUE     Define a variable
  unset NAME         Remove a variable
  strict [on|off]    Show or set whether undefined variables are errors
  funcs              List built-in functions
  edit               Edit variables in external $EDITOR
  clear              Clear screen
  quit               Exit REPL

Usage:
  Type an expression to evaluate it, e.g. variants("{} deals", fast, cheap)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line of an evaluated expression.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the echo line of a control command.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	engine       *lang.Engine
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session evaluating expressions with engine.
// Variables changed during the session are changed in engine.
func Run(
	ctx context.Context,
	engine *lang.Engine,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.Int("var_count", len(engine.Vars())),
		slog.Bool("strict", engine.RaiseOnMiss()),
	)

	m := newModel(ctx, engine, NewHistory(), logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return context.Cause(ctx)
	}

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	engine *lang.Engine,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		engine:     engine,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editVarsMsg:
		m.engine.SetVars(msg.vars)
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("var_count", len(msg.vars)),
		)

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("✔ %d variable(s) loaded", len(msg.vars)),
		))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine renders the line below the input: history position, a usage
// hint, the signature of the enclosing call, or the completion bar.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") +
			" (press Esc to return)")
	}

	if len(m.matches) > 0 {
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	if m.mode == modeEval {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			signature, params := getSignature(call.name)

			return renderSignatureHint(signature, params, call.argIndex)
		}
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the candidate being cycled.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) edits or moves
	// without auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the candidate selection by step (1 for Tab, -1 for
// Shift-Tab) and writes the selected candidate into the input.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly
// one candidate remains and the typed word already equals it. autoConfirm
// is false for deletions and cursor movement so the user can edit freely.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str

	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText = ""
	m.evalCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")
	m.matches = nil

	m.history.WriteWithMode(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	out, err := m.evaluate(input)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(out)))
	}

	return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(out)))
}

// evaluate parses input with the session engine. On error the returned
// text is the error message, preceded by a caret snippet for syntax errors.
func (m model) evaluate(input string) (string, error) {
	val, err := m.engine.Parse(m.ctxFunc(), input)
	if err != nil {
		var (
			lerr *lang.Error
			text string
		)

		if errors.As(err, &lerr) {
			text = lerr.Snippet(input)
		}

		return text + "error: " + err.Error(), err
	}

	if val.IsList() && val.Len() == 0 {
		return hintStyle.Render("(no results)"), nil
	}

	return val.String(), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	echoCmd := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("input", input),
	)

	name, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.handleEdit())
	}

	out, err := m.runCommand(name, args)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(err.Error())))
	}

	return m, tea.Sequence(echoCmd, tea.Println(out))
}

// runCommand executes the control commands that only produce output.
func (m model) runCommand(name, args string) (string, error) {
	switch name {
	case "h", "help":
		return helpMessage(), nil

	case "v", "vars":
		return m.listVars(), nil

	case "f", "funcs":
		return listFuncs(), nil

	case "set":
		key, value, ok := strings.Cut(args, "=")
		key = strings.TrimSpace(key)

		if !ok || !isName(key) {
			return "", fmt.Errorf("%w: set NAME=VALUE", ErrUsage)
		}

		m.engine.SetVar(key, strings.TrimSpace(value))

		return resultStyle.Render("✔ " + key), nil

	case "unset":
		if !isName(args) {
			return "", fmt.Errorf("%w: unset NAME", ErrUsage)
		}

		if !m.engine.UnsetVar(args) {
			return hintStyle.Render(args + " is not defined"), nil
		}

		return resultStyle.Render("✔ " + args), nil

	case "s", "strict":
		switch strings.ToLower(args) {
		case "":
		case "on", "true", "1":
			m.engine.SetRaiseOnMiss(true)
		case "off", "false", "0":
			m.engine.SetRaiseOnMiss(false)
		default:
			return "", fmt.Errorf("%w: strict [on|off]", ErrUsage)
		}

		if m.engine.RaiseOnMiss() {
			return "strict: on (undefined variables are errors)", nil
		}

		return "strict: off (undefined variables are empty)", nil

	default:
		return "", fmt.Errorf("unknown command: %s (try 'help')", name)
	}
}

// isName reports whether s can be referenced by a placeholder.
func isName(s string) bool {
	return len(lang.Placeholders("{"+s+"}")) == 1
}

func (m model) listVars() string {
	names := varNames(m.engine)
	if len(names) == 0 {
		return hintStyle.Render("  (no variables)")
	}

	vars := m.engine.Vars()

	var b strings.Builder

	for _, name := range names {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(strconv.Quote(vars[name])))
	}

	return b.String()
}

func listFuncs() string {
	var b strings.Builder

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	for bi := range lang.Builtins() {
		fmt.Fprintf(tw, "  %s\t%s\n", bi.Signature(), bi.Doc())
	}

	_ = tw.Flush()

	return b.String()
}

func (m model) handleEdit() tea.Cmd {
	cmd := &editVarsCommand{
		vars:    m.engine.Vars(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.newVars == nil {
			return editCancelledMsg{}
		}

		return editVarsMsg{vars: cmd.newVars}
	})
}

// historyStep moves through history by dir (-1 older, 1 newer). In mode
// only entries of the current mode are visited; otherwise the mode follows
// the entry. Stepping past the newest entry clears the input.
func (m model) historyStep(dir int, inMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.GetEntry(i)
		if err != nil {
			break
		}

		if inMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to the specified mode, preserving the input of
// each mode.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
