// Package bubbletea provides the terminal UI for pasting a diff, previewing it,
// and reviewing analysis results, using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffinsight"
)

// Focus identifies which panel receives keys.
type Focus int

// Focus constants, in tab order.
const (
	FocusInput Focus = iota
	FocusIssues
	FocusSolutions
	focusCount
)

// DefaultToastDuration is how long a notification stays on screen.
const DefaultToastDuration = 3 * time.Second

const inputPlaceholder = `Example:
- function oldMethod() {
-   return data.value;
- }
+ function newMethod() {
+   return data?.value || defaultValue;
+ }`

// analysisDoneMsg carries the outcome of the request it was dispatched for.
type analysisDoneMsg struct {
	req     diffinsight.Request
	outcome diffinsight.Outcome
}

type toastExpiredMsg struct {
	id int
}

type toast struct {
	n  diffinsight.Notification
	id int
}

// Model is the Bubble Tea model for the analyzer screen. It owns the
// analysis session; the session is only touched from Update.
type Model struct {
	session   *diffinsight.Session
	analyzer  diffinsight.Analyzer
	clipboard diffinsight.Clipboard
	notifier  diffinsight.Notifier
	timeout   time.Duration

	// Cancelled on quit so an in-flight analysis stops.
	ctx    context.Context
	cancel context.CancelFunc

	// Syntax highlighting
	language         string
	languageDetector diffinsight.LanguageDetector
	tokenizer        diffinsight.Tokenizer

	// UI components. The textarea rewrites tabs and carriage returns, so the
	// session keeps the seeded text until the user edits the buffer.
	input      textarea.Model
	inputValue string
	preview    viewport.Model
	issues     viewport.Model
	solutions  viewport.Model
	spinner    spinner.Model
	help       help.Model

	// UI state
	focus         Focus
	toast         *toast
	toastSeq      int
	toastDuration time.Duration
	keymap        KeyMap
	styles        diffinsight.Styles
	renderer      *lipgloss.Renderer
	layout        layout
	ready         bool

	// Input and width the preview was last rendered for.
	previewInput string
	previewWidth int
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	ctx              context.Context
	clipboard        diffinsight.Clipboard
	notifier         diffinsight.Notifier
	timeout          time.Duration
	theme            diffinsight.Theme
	renderer         *lipgloss.Renderer
	language         string
	languageDetector diffinsight.LanguageDetector
	tokenizer        diffinsight.Tokenizer
	input            string
	clearResultOnRun bool
	toastDuration    time.Duration
}

// WithContext sets the parent context of analysis calls. Quitting cancels a
// context derived from it.
func WithContext(ctx context.Context) ModelOption {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithClipboard sets the clipboard used by the copy actions. Without one the
// copy actions do nothing.
func WithClipboard(c diffinsight.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithNotifier sets a notifier that receives every notification in addition
// to the on-screen toast.
func WithNotifier(n diffinsight.Notifier) ModelOption {
	return func(cfg *modelConfig) {
		cfg.notifier = n
	}
}

// WithTimeout bounds each analysis call. Zero disables the bound.
func WithTimeout(d time.Duration) ModelOption {
	return func(cfg *modelConfig) {
		cfg.timeout = d
	}
}

// WithTheme sets the color theme. Without one the screen has no colors.
func WithTheme(t diffinsight.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithLanguage sets the language hint for preview highlighting.
func WithLanguage(lang string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.language = lang
	}
}

// WithLanguageDetector sets the detector used to pick the preview language.
func WithLanguageDetector(d diffinsight.LanguageDetector) ModelOption {
	return func(cfg *modelConfig) {
		cfg.languageDetector = d
	}
}

// WithTokenizer enables syntax highlighting of the preview.
func WithTokenizer(t diffinsight.Tokenizer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithInput seeds the input buffer.
func WithInput(text string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.input = text
	}
}

// WithClearResultOnRun hides the previous result while a new analysis runs.
func WithClearResultOnRun(clear bool) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clearResultOnRun = clear
	}
}

// WithToastDuration sets how long notifications stay on screen.
func WithToastDuration(d time.Duration) ModelOption {
	return func(cfg *modelConfig) {
		cfg.toastDuration = d
	}
}

// NewModel creates a Model that sends analysis requests to analyzer.
func NewModel(analyzer diffinsight.Analyzer, opts ...ModelOption) Model {
	cfg := &modelConfig{
		ctx:           context.Background(),
		timeout:       diffinsight.DefaultAnalysisTimeout,
		toastDuration: DefaultToastDuration,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var styles diffinsight.Styles
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	ctx, cancel := context.WithCancel(cfg.ctx)

	m := Model{
		session:          diffinsight.NewSession(diffinsight.WithClearResultOnRun(cfg.clearResultOnRun)),
		analyzer:         analyzer,
		clipboard:        cfg.clipboard,
		notifier:         cfg.notifier,
		timeout:          cfg.timeout,
		ctx:              ctx,
		cancel:           cancel,
		language:         cfg.language,
		languageDetector: cfg.languageDetector,
		tokenizer:        cfg.tokenizer,
		toastDuration:    cfg.toastDuration,
		keymap:           DefaultKeyMap(),
		styles:           styles,
		renderer:         cfg.renderer,
		help:             help.New(),
		previewWidth:     -1,
	}

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(cfg.input)
	ta.Focus()
	m.input = ta
	m.inputValue = ta.Value()
	m.session.SetInput(cfg.input)

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styleFor(styles.Focus)),
	)

	return m
}

// Session returns the analysis session owned by the model.
func (m Model) Session() *diffinsight.Session {
	return m.session
}

// Focus returns the panel that currently receives keys.
func (m Model) Focus() Focus {
	return m.focus
}

// Toast returns the notification on screen, if any.
func (m Model) Toast() (diffinsight.Notification, bool) {
	if m.toast == nil {
		return diffinsight.Notification{}, false
	}
	return m.toast.n, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if vp := m.focusedViewport(); vp != nil {
			var cmd tea.Cmd
			*vp, cmd = vp.Update(msg)
			return m, cmd
		}
		return m, nil

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is running.
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshResults()
		return m, cmd
	}

	// Cursor blinks and anything else belong to the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncInput()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Analyze):
		return m.analyze()
	case key.Matches(msg, m.keymap.CopyIssues):
		return m.copyList(diffinsight.LabelIssues)
	case key.Matches(msg, m.keymap.CopySolutions):
		return m.copyList(diffinsight.LabelSolutions)
	case key.Matches(msg, m.keymap.NextFocus):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keymap.PrevFocus):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keymap.Clear):
		m.input.Reset()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.layout.width, m.layout.height)
		return m, nil
	}

	if m.focus == FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.syncInput()
		return m, cmd
	}

	vp := m.focusedViewport()
	switch {
	case key.Matches(msg, m.keymap.ScrollUp):
		vp.ScrollUp(1)
	case key.Matches(msg, m.keymap.ScrollDown):
		vp.ScrollDown(1)
	}
	return m, nil
}

// analyze starts a request for the current buffer. A blank buffer raises a
// notification; a request while one is running is ignored.
func (m Model) analyze() (tea.Model, tea.Cmd) {
	req, err := m.session.Begin()
	switch {
	case errors.Is(err, diffinsight.ErrEmptyInput):
		return m, m.notify(diffinsight.EmptyInputNotification())
	case err != nil:
		return m, nil
	}

	m.refreshResults()
	return m, tea.Batch(
		m.spinner.Tick,
		analyzeCmd(m.ctx, m.analyzer, req, m.timeout),
	)
}

// analyzeCmd runs the analysis off the event loop and reports back with a
// message tied to req.
func analyzeCmd(ctx context.Context, analyzer diffinsight.Analyzer, req diffinsight.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		return analysisDoneMsg{
			req:     req,
			outcome: diffinsight.RunAnalysis(ctx, analyzer, req, timeout),
		}
	}
}

func (m Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if !m.session.Resolve(msg.req, msg.outcome) {
		return m, nil
	}
	m.refreshResults()
	if !msg.outcome.Succeeded() {
		return m, m.notify(diffinsight.AnalysisFailedNotification(msg.outcome.Err))
	}
	m.issues.GotoTop()
	m.solutions.GotoTop()
	return m, m.notify(diffinsight.AnalysisCompleteNotification())
}

// copyList writes the numbered list named by label to the clipboard. It does
// nothing when there is no result to copy.
func (m Model) copyList(label string) (tea.Model, tea.Cmd) {
	result := m.session.Result()
	if result == nil || m.clipboard == nil {
		return m, nil
	}

	items := result.Issues
	if label == diffinsight.LabelSolutions {
		items = result.Solutions
	}
	if err := diffinsight.Export(m.clipboard, items); err != nil {
		return m, m.notify(diffinsight.CopyFailedNotification(label, err))
	}
	return m, m.notify(diffinsight.CopiedNotification(label))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.session.Close()
	return m, tea.Quit
}

// notify shows n as a toast, forwards it to the external notifier, and
// schedules the toast's removal.
func (m *Model) notify(n diffinsight.Notification) tea.Cmd {
	if m.notifier != nil {
		m.notifier.Notify(n)
	}
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{n: n, id: id}
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if f == FocusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) focusedViewport() *viewport.Model {
	switch m.focus {
	case FocusIssues:
		return &m.issues
	case FocusSolutions:
		return &m.solutions
	default:
		return nil
	}
}

// syncInput copies the textarea buffer into the session once it was edited.
func (m *Model) syncInput() {
	if v := m.input.Value(); v != m.inputValue {
		m.inputValue = v
		m.session.SetInput(v)
	}
	m.refreshPreview()
}

func (m *Model) resize(width, height int) {
	m.help.Width = width
	m.layout = computeLayout(width, height, lipgloss.Height(m.help.View(m.keymap)))
	l := m.layout

	m.input.SetWidth(l.colInner)
	m.input.SetHeight(l.topInner)

	if !m.ready {
		m.preview = viewport.New(l.colInner, l.topInner)
		m.issues = viewport.New(l.colInner, l.bottomInner)
		m.solutions = viewport.New(l.colInner, l.bottomInner)
		m.ready = true
	} else {
		m.preview.Width, m.preview.Height = l.colInner, l.topInner
		m.issues.Width, m.issues.Height = l.colInner, l.bottomInner
		m.solutions.Width, m.solutions.Height = l.colInner, l.bottomInner
	}

	m.refreshPreview()
	m.refreshResults()
}
