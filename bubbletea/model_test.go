package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/diffinsight"
	"github.com/fwojciec/diffinsight/bubbletea"
	"github.com/fwojciec/diffinsight/mock"
	"github.com/fwojciec/diffinsight/stub"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyAnalyze       = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCopyIssues    = tea.KeyMsg{Type: tea.KeyCtrlY}
	keyCopySolutions = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyTab           = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab      = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyQuit          = tea.KeyMsg{Type: tea.KeyEsc}
)

// asciiRenderer creates a lipgloss renderer without colors.
func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// notifications records every notification the model raises.
type notifications struct {
	mu  sync.Mutex
	got []diffinsight.Notification
}

func (n *notifications) notifier() *mock.Notifier {
	return &mock.Notifier{NotifyFn: func(note diffinsight.Notification) {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.got = append(n.got, note)
	}}
}

func (n *notifications) all() []diffinsight.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]diffinsight.Notification(nil), n.got...)
}

// fixedAnalyzer answers every request with issues and solutions and counts calls.
func fixedAnalyzer(calls *atomic.Int32, issues, solutions []string) *mock.Analyzer {
	return &mock.Analyzer{AnalyzeFn: func(context.Context, string) (*diffinsight.AnalysisResult, error) {
		calls.Add(1)
		return &diffinsight.AnalysisResult{Issues: issues, Solutions: solutions}, nil
	}}
}

// blockingAnalyzer waits for its context to end.
func blockingAnalyzer(seen chan<- error) *mock.Analyzer {
	return &mock.Analyzer{AnalyzeFn: func(ctx context.Context, _ string) (*diffinsight.AnalysisResult, error) {
		<-ctx.Done()
		if seen != nil {
			seen <- ctx.Err()
		}
		return nil, ctx.Err()
	}}
}

func newModel(t *testing.T, analyzer diffinsight.Analyzer, opts ...bubbletea.ModelOption) bubbletea.Model {
	t.Helper()
	base := []bubbletea.ModelOption{
		bubbletea.WithRenderer(asciiRenderer()),
		bubbletea.WithToastDuration(time.Millisecond),
	}
	m := bubbletea.NewModel(analyzer, append(base, opts...)...)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	return m
}

func update(t *testing.T, m bubbletea.Model, msg tea.Msg) (bubbletea.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(bubbletea.Model)
	require.True(t, ok)
	return model, cmd
}

// drain runs cmd and any batched commands and returns the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// settle runs cmd and feeds what it produces back into m.
func settle(t *testing.T, m bubbletea.Model, cmd tea.Cmd) bubbletea.Model {
	t.Helper()
	for _, msg := range drain(cmd) {
		m, _ = update(t, m, msg)
	}
	return m
}

// complete runs one analysis to completion.
func complete(t *testing.T, m bubbletea.Model) bubbletea.Model {
	t.Helper()
	m, cmd := update(t, m, keyAnalyze)
	m = settle(t, m, cmd)
	require.Equal(t, diffinsight.Completed, m.Session().State())
	return m
}

func TestModel_InitialView(t *testing.T) {
	t.Parallel()

	m := newModel(t, stub.NewAnalyzer())
	view := m.View()

	assert.Contains(t, view, "CodeDiff Insight")
	assert.Contains(t, view, "Code Difference Input")
	assert.Contains(t, view, diffinsight.AnalyzeLabel)
	assert.Contains(t, view, "Issues will appear here after analysis")
	assert.Contains(t, view, "Solutions will appear here after analysis")
	assert.Contains(t, view, "Example:")
	assert.Equal(t, bubbletea.FocusInput, m.Focus())
}

func TestModel_ViewBeforeSize(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(stub.NewAnalyzer())

	assert.Equal(t, "Loading...", m.View())
}

func TestModel_AnalyzeBlankInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\n\t\n"} {
		var calls atomic.Int32
		var got notifications
		m := newModel(t, fixedAnalyzer(&calls, nil, nil),
			bubbletea.WithInput(input),
			bubbletea.WithNotifier(got.notifier()),
		)

		m, cmd := update(t, m, keyAnalyze)
		drain(cmd)

		assert.Equal(t, []diffinsight.Notification{diffinsight.EmptyInputNotification()}, got.all(), "input: %q", input)
		assert.Equal(t, diffinsight.Idle, m.Session().State())
		assert.Zero(t, calls.Load())
		toast, ok := m.Toast()
		assert.True(t, ok)
		assert.Equal(t, "Error", toast.Title)
	}
}

func TestModel_AnalyzeRunsToCompletion(t *testing.T) {
	t.Parallel()

	var got notifications
	m := newModel(t, stub.NewAnalyzer(stub.WithDelay(0)),
		bubbletea.WithInput("+ a\n- b"),
		bubbletea.WithNotifier(got.notifier()),
	)

	m, cmd := update(t, m, keyAnalyze)

	require.NotNil(t, cmd)
	assert.Equal(t, diffinsight.Running, m.Session().State())
	assert.True(t, m.Session().Busy())
	running := m.View()
	assert.Contains(t, running, diffinsight.AnalyzingLabel)
	assert.Contains(t, running, "Scanning for issues...")
	assert.Contains(t, running, "Generating solutions...")

	m = settle(t, m, cmd)

	assert.Equal(t, diffinsight.Completed, m.Session().State())
	assert.False(t, m.Session().Busy())
	assert.Equal(t, stub.Issues, m.Session().Result().Issues)
	assert.Equal(t, stub.Solutions, m.Session().Result().Solutions)
	assert.Equal(t, []diffinsight.Notification{diffinsight.AnalysisCompleteNotification()}, got.all())

	view := m.View()
	assert.Contains(t, view, stub.Issues[0])
	assert.Contains(t, view, stub.Solutions[4])
	assert.Contains(t, view, "Analysis Complete")
	assert.NotContains(t, view, "Issues will appear here after analysis")
}

func TestModel_SecondAnalyzeWhileRunningIsIgnored(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	m := newModel(t, fixedAnalyzer(&calls, []string{"i"}, []string{"s"}), bubbletea.WithInput("+ a"))

	m, first := update(t, m, keyAnalyze)
	m, second := update(t, m, keyAnalyze)

	assert.Nil(t, second)
	m = settle(t, m, first)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, diffinsight.Completed, m.Session().State())
}

func TestModel_Copy(t *testing.T) {
	t.Parallel()

	t.Run("issues are copied as a numbered list", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var got notifications
		var copied []string
		cb := &mock.Clipboard{CopyFn: func(s string) error {
			copied = append(copied, s)
			return nil
		}}
		m := newModel(t, fixedAnalyzer(&calls, []string{"a", "b"}, []string{"c"}),
			bubbletea.WithInput("+ a"),
			bubbletea.WithClipboard(cb),
			bubbletea.WithNotifier(got.notifier()),
		)
		m = complete(t, m)

		m, _ = update(t, m, keyCopyIssues)

		assert.Equal(t, []string{"1. a\n2. b"}, copied)
		notes := got.all()
		require.Len(t, notes, 2)
		assert.Equal(t, diffinsight.CopiedNotification(diffinsight.LabelIssues), notes[1])
		assert.Equal(t, "Issues copied successfully", notes[1].Description)
		assert.Equal(t, diffinsight.Completed, m.Session().State())
	})

	t.Run("solutions are copied independently", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var got notifications
		var copied []string
		cb := &mock.Clipboard{CopyFn: func(s string) error {
			copied = append(copied, s)
			return nil
		}}
		m := newModel(t, fixedAnalyzer(&calls, []string{"a", "b"}, []string{"c", "d", "e"}),
			bubbletea.WithInput("+ a"),
			bubbletea.WithClipboard(cb),
			bubbletea.WithNotifier(got.notifier()),
		)
		m = complete(t, m)

		_, _ = update(t, m, keyCopySolutions)

		assert.Equal(t, []string{"1. c\n2. d\n3. e"}, copied)
		notes := got.all()
		require.Len(t, notes, 2)
		assert.Equal(t, diffinsight.CopiedNotification(diffinsight.LabelSolutions), notes[1])
	})

	t.Run("nothing to copy before a result", func(t *testing.T) {
		t.Parallel()

		var got notifications
		cb := &mock.Clipboard{CopyFn: func(string) error {
			t.Fatal("clipboard should not be written")
			return nil
		}}
		m := newModel(t, stub.NewAnalyzer(),
			bubbletea.WithInput("+ a"),
			bubbletea.WithClipboard(cb),
			bubbletea.WithNotifier(got.notifier()),
		)

		m, cmd := update(t, m, keyCopyIssues)

		assert.Nil(t, cmd)
		assert.Empty(t, got.all())
		_, ok := m.Toast()
		assert.False(t, ok)
	})

	t.Run("clipboard failure is reported", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var got notifications
		cb := &mock.Clipboard{CopyFn: func(string) error { return errors.New("no display") }}
		m := newModel(t, fixedAnalyzer(&calls, []string{"a"}, []string{"b"}),
			bubbletea.WithInput("+ a"),
			bubbletea.WithClipboard(cb),
			bubbletea.WithNotifier(got.notifier()),
		)
		m = complete(t, m)

		m, _ = update(t, m, keyCopyIssues)

		notes := got.all()
		require.Len(t, notes, 2)
		assert.Equal(t, "Copy failed", notes[1].Title)
		assert.Contains(t, notes[1].Description, "no display")
		assert.Contains(t, m.View(), "Copy failed")
	})
}

func TestModel_AnalysisFailure(t *testing.T) {
	t.Parallel()

	t.Run("service error fails and allows retry", func(t *testing.T) {
		t.Parallel()

		var got notifications
		fail := true
		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, string) (*diffinsight.AnalysisResult, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return &diffinsight.AnalysisResult{Issues: []string{"i"}, Solutions: []string{"s"}}, nil
		}}
		m := newModel(t, analyzer,
			bubbletea.WithInput("+ a"),
			bubbletea.WithNotifier(got.notifier()),
		)

		m, cmd := update(t, m, keyAnalyze)
		m = settle(t, m, cmd)

		assert.Equal(t, diffinsight.Failed, m.Session().State())
		notes := got.all()
		require.Len(t, notes, 1)
		assert.Equal(t, "Analysis Failed", notes[0].Title)
		assert.Contains(t, m.View(), "analysis service error: boom")

		fail = false
		m, cmd = update(t, m, keyAnalyze)
		assert.Equal(t, diffinsight.Running, m.Session().State())
		m = settle(t, m, cmd)

		assert.Equal(t, diffinsight.Completed, m.Session().State())
		assert.NotContains(t, m.View(), "analysis service error")
	})

	t.Run("slow service times out", func(t *testing.T) {
		t.Parallel()

		var got notifications
		m := newModel(t, blockingAnalyzer(nil),
			bubbletea.WithInput("+ a"),
			bubbletea.WithTimeout(10*time.Millisecond),
			bubbletea.WithNotifier(got.notifier()),
		)

		m, cmd := update(t, m, keyAnalyze)
		m = settle(t, m, cmd)

		assert.Equal(t, diffinsight.Failed, m.Session().State())
		assert.Equal(t, diffinsight.KindTimeout, m.Session().Err().Kind)
		notes := got.all()
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0].Description, "did not answer in time")
	})
}

func TestModel_QuitCancelsAnalysis(t *testing.T) {
	t.Parallel()

	var got notifications
	seen := make(chan error, 1)
	m := newModel(t, blockingAnalyzer(seen),
		bubbletea.WithInput("+ a"),
		bubbletea.WithNotifier(got.notifier()),
	)

	m, analysis := update(t, m, keyAnalyze)
	m, quit := update(t, m, keyQuit)

	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
	assert.True(t, m.Session().Closed())

	m = settle(t, m, analysis)

	assert.ErrorIs(t, <-seen, context.Canceled)
	assert.Empty(t, got.all())
	assert.Nil(t, m.Session().Result())
}

func TestModel_PreviousResultWhileRunning(t *testing.T) {
	t.Parallel()

	t.Run("shown by default", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		m := newModel(t, fixedAnalyzer(&calls, []string{"old issue"}, []string{"old fix"}), bubbletea.WithInput("+ a"))
		m = complete(t, m)

		m, _ = update(t, m, keyAnalyze)

		view := m.View()
		assert.Contains(t, view, "Scanning for issues...")
		assert.Contains(t, view, "old issue")
		assert.Contains(t, view, "old fix")
	})

	t.Run("hidden when configured", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		m := newModel(t, fixedAnalyzer(&calls, []string{"old issue"}, []string{"old fix"}),
			bubbletea.WithInput("+ a"),
			bubbletea.WithClearResultOnRun(true),
		)
		m = complete(t, m)

		m, _ = update(t, m, keyAnalyze)

		view := m.View()
		assert.Contains(t, view, "Scanning for issues...")
		assert.NotContains(t, view, "old issue")
	})
}

func TestModel_Typing(t *testing.T) {
	t.Parallel()

	m := newModel(t, stub.NewAnalyzer())
	assert.Contains(t, m.View(), "Paste a diff to see the preview")

	for _, r := range "+ x" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "+ x", m.Session().Input())
	assert.True(t, m.Session().CanAnalyze())
	view := m.View()
	assert.Contains(t, view, "+1 -0")
	assert.NotContains(t, view, "Paste a diff to see the preview")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Empty(t, m.Session().Input())
}

func TestModel_Paste(t *testing.T) {
	t.Parallel()

	m := newModel(t, stub.NewAnalyzer())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+ a\n- b"), Paste: true})

	assert.Equal(t, "+ a\n- b", m.Session().Input())
	assert.Contains(t, m.View(), "+1 -1")
}

func TestModel_SeededInputKeepsTabsAndCarriageReturns(t *testing.T) {
	t.Parallel()

	const seed = "+\tfoo()\r\n-\tbar()\n"
	var got []string
	analyzer := &mock.Analyzer{AnalyzeFn: func(_ context.Context, diff string) (*diffinsight.AnalysisResult, error) {
		got = append(got, diff)
		return &diffinsight.AnalysisResult{}, nil
	}}

	m := newModel(t, analyzer, bubbletea.WithInput(seed))

	assert.Equal(t, seed, m.Session().Input())
	assert.Contains(t, m.View(), "+1 -1")

	complete(t, m)

	assert.Equal(t, []string{seed}, got)
}

func TestModel_Focus(t *testing.T) {
	t.Parallel()

	m := newModel(t, stub.NewAnalyzer(), bubbletea.WithInput("+ a"))

	m, _ = update(t, m, keyTab)
	assert.Equal(t, bubbletea.FocusIssues, m.Focus())

	// Keys no longer reach the input.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "+ a", m.Session().Input())

	m, _ = update(t, m, keyTab)
	assert.Equal(t, bubbletea.FocusSolutions, m.Focus())

	m, _ = update(t, m, keyTab)
	assert.Equal(t, bubbletea.FocusInput, m.Focus())

	m, _ = update(t, m, keyShiftTab)
	assert.Equal(t, bubbletea.FocusSolutions, m.Focus())
}

func TestModel_ToastExpires(t *testing.T) {
	t.Parallel()

	m := newModel(t, stub.NewAnalyzer())

	m, first := update(t, m, keyAnalyze)
	m, second := update(t, m, keyAnalyze)

	// The first expiry belongs to a replaced toast.
	m = settle(t, m, first)
	_, ok := m.Toast()
	assert.True(t, ok)

	m = settle(t, m, second)
	_, ok = m.Toast()
	assert.False(t, ok)
}

func TestModel_SyntaxHighlighting(t *testing.T) {
	t.Parallel()

	t.Run("tokenizes line bodies in the detected language", func(t *testing.T) {
		t.Parallel()

		var gotLang, gotSource string
		tokenizer := &mock.Tokenizer{TokenizeLinesFn: func(language, source string) [][]diffinsight.Token {
			gotLang, gotSource = language, source
			var lines [][]diffinsight.Token
			for line := range strings.SplitSeq(source, "\n") {
				lines = append(lines, []diffinsight.Token{{Text: strings.ToUpper(line)}})
			}
			return lines
		}}
		detector := &mock.LanguageDetector{DetectFn: func(hint, source string) string {
			assert.Equal(t, "py", hint)
			return "Python"
		}}

		m := newModel(t, stub.NewAnalyzer(),
			bubbletea.WithInput("+x = 1\n-y = 2"),
			bubbletea.WithLanguage("py"),
			bubbletea.WithLanguageDetector(detector),
			bubbletea.WithTokenizer(tokenizer),
		)
		view := m.View()

		assert.Equal(t, "Python", gotLang)
		assert.Equal(t, "x = 1\ny = 2", gotSource)
		assert.Contains(t, view, "+X = 1")
		assert.Contains(t, view, "-Y = 2")
	})

	t.Run("falls back to plain lines when the tokenizer disagrees", func(t *testing.T) {
		t.Parallel()

		tokenizer := &mock.Tokenizer{TokenizeLinesFn: func(string, string) [][]diffinsight.Token {
			return [][]diffinsight.Token{{{Text: "ONLY"}}}
		}}

		m := newModel(t, stub.NewAnalyzer(),
			bubbletea.WithInput("+x = 1\n-y = 2"),
			bubbletea.WithLanguage("Python"),
			bubbletea.WithTokenizer(tokenizer),
		)
		view := m.View()

		assert.Contains(t, view, "+x = 1")
		assert.NotContains(t, view, "ONLY")
	})
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	var got notifications
	m := bubbletea.NewModel(stub.NewAnalyzer(stub.WithDelay(0)),
		bubbletea.WithInput("+ a\n- b"),
		bubbletea.WithRenderer(asciiRenderer()),
		bubbletea.WithNotifier(got.notifier()),
	)
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(160, 50),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("CodeDiff Insight"))
	})

	tm.Send(keyAnalyze)
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Analysis Complete"))
	})

	tm.Send(keyQuit)
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(bubbletea.Model)
	require.True(t, ok)
	assert.Equal(t, diffinsight.Completed, final.Session().State())
	assert.True(t, final.Session().Closed())
	assert.Equal(t, []diffinsight.Notification{diffinsight.AnalysisCompleteNotification()}, got.all())
}

func TestViewer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bubbletea.NewViewer(stub.NewAnalyzer()).
		WithProgramOptions(tea.WithInput(strings.NewReader("")), tea.WithOutput(io.Discard)).
		Run(ctx, "+ a")

	assert.NoError(t, err)
}
