package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

// editDataMsg is sent when data editing completes successfully.
type editDataMsg struct{ data lang.Data }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit invalid data.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-decode error.
type editErrorMsg struct{ err error }

const (
	templatePrompt = "➜ "
	ctrlPrompt     = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help             Print this cruft
  list             List data variables
  set KEY=VALUE    Bind a string variable
  bool KEY=BOOL    Bind a boolean variable
  unset KEY...     Remove variables
  edit             Edit data as YAML in external $EDITOR
  clear            Clear screen
  quit             Exit REPL

Usage:
  Type a template to render it against the data variables
  Completions appear inside {{ as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between template and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeTemplate inputMode = iota
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
	keywordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the template echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(templatePrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and
// input styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// renderResult formats the outcome of rendering input. Errors are drawn
// with a caret under the offending column of the echoed input line.
func renderResult(input string, res lang.Result) string {
	if !res.IsError {
		if res.Output == "" {
			return hintStyle.Render("(empty)")
		}

		return resultStyle.Render(res.Output)
	}

	col := lipgloss.Width(templatePrompt) +
		lipgloss.Width(input[:max(0, min(res.Index, len(input)))])

	return errorStyle.Render(strings.Repeat(" ", col)+"^") + "\n" +
		errorStyle.Render("error: "+res.Error)
}

// Config holds the REPL settings.
type Config struct {
	// CacheDir holds the history file. Empty disables persistence.
	CacheDir string
	Logger   log.Logger
	Options  []lang.Option
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	data         lang.Data
	opts         []lang.Option
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
	tmplText     string
	tmplCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL, rendering each entered line against data.
// The REPL works on a copy of data; the caller's map is never modified.
func Run(ctx context.Context, data lang.Data, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.Int("data_count", len(data)),
	)

	if cfg.Input == nil && !isatty.IsTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	var historyPath string
	if cfg.CacheDir != "" {
		historyPath = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(newModel(ctx, data, history, cfg), opts...)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	data lang.Data,
	history *History,
	cfg Config,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(templatePrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	own := make(lang.Data, len(data))
	maps.Copy(own, data)

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		data:       own,
		opts:       cfg.Options,
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeTemplate,
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
		m.input.Width = msg.Width - lipgloss.Width(templatePrompt) - 2

		return m, nil

	case editDataMsg:
		m.data = msg.data
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("data_count", len(m.data)),
		)

		return m, tea.Println(resultStyle.Render("✔ data updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded, data unchanged"))

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

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		if m.mode == modeTemplate {
			b.WriteString(hintStyle.Render("Type a template or press Esc for commands"))
		} else {
			b.WriteString(hintStyle.Render(
				"Type: help, list, set, bool, unset, edit, clear, quit (press Esc to return)"))
		}

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case m.mode == modeTemplate:
		b.WriteString(hintStyle.Render(valueHint(m.data, input, m.input.Position())))
	}

	b.WriteString("\n")

	return b.String()
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
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(+1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(+1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space is a "breaking" key while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, starting a tab cycle if none is
// active. A single candidate is completed and confirmed immediately.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

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
// When autoConfirm is true it also auto-confirms the completion when exactly
// one candidate remains and the typed word already equals that candidate.
// autoConfirm should be false for deletions and cursor navigation so that
// the user can freely edit without unexpected completions.
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
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}

	m.tmplText, m.tmplCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if m.mode == modeCtrl {
		input := strings.TrimSpace(raw)

		_ = m.history.Add(input, modeCtrl)
		m.historyIdx = m.history.Len()

		return m.executeCommand(input)
	}

	// Template whitespace is significant; render the line as typed.
	_ = m.history.Add(raw, modeTemplate)
	m.historyIdx = m.history.Len()

	res := lang.SafeRun(m.ctxFunc(), raw, m.data, m.opts...)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl render",
		slog.String("input", raw),
		slog.Any("result", res),
	)

	return m, tea.Sequence(
		tea.Println(formatCommand(raw)),
		tea.Println(renderResult(raw, res)),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	echo := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.String("args", rest),
	)

	reply := func(s string) (model, tea.Cmd) {
		return m, tea.Sequence(echo, tea.Println(s))
	}

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return reply(helpMessage())

	case "l", "list":
		return reply(m.listData())

	case "s", "set", "b", "bool":
		key, val, err := m.bind(cmd == "b" || cmd == "bool", rest)
		if err != nil {
			return reply(errorStyle.Render("error: " + err.Error()))
		}

		return reply(hintStyle.Render(key + " = " + formatValue(val)))

	case "u", "unset":
		for _, key := range strings.Fields(rest) {
			delete(m.data, key)
		}

		return m, echo

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.handleEdit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// bind parses KEY=VALUE and stores it in the data context.
func (m model) bind(asBool bool, assignment string) (string, lang.Value, error) {
	key, raw, err := lang.ParseAssignment(assignment)
	if err != nil {
		return "", lang.Value{}, err
	}

	if !lang.ValidIdentifier(key) {
		return "", lang.Value{}, fmt.Errorf("%q cannot be referenced from a template", key)
	}

	val := lang.String(raw)

	if asBool {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", lang.Value{}, fmt.Errorf("%q is not a boolean", raw)
		}

		val = lang.Bool(b)
	}

	m.data[key] = val

	return key, val, nil
}

func (m model) handleEdit() tea.Cmd {
	cmd := &editDataCommand{
		data:    m.data,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.newData == nil {
			return editCancelledMsg{}
		}

		return editDataMsg{data: cmd.newData}
	})
}

// historyStep moves through history by step entries. In sameMode, entries
// entered in the other mode are skipped; otherwise the mode follows the
// entry. Moving past the newest entry clears the input.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if m.mode != entry.Mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

func (m model) listData() string {
	if len(m.data) == 0 {
		return hintStyle.Render("  (no data)")
	}

	var b strings.Builder

	for i, key := range m.data.Keys() {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "  %s %s", key, hintStyle.Render(formatValue(m.data[key])))
	}

	return b.String()
}

// toggleMode switches between template and control modes.
func (m model) toggleMode() model {
	if m.mode == modeTemplate {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeTemplate)
}

// switchToMode switches to the specified mode, preserving each mode's
// pending input.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeTemplate {
		m.tmplText, m.tmplCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeTemplate {
		m.input.Prompt = promptStyle.Render(templatePrompt)
		m.input.SetValue(m.tmplText)
		m.input.SetCursor(m.tmplCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
