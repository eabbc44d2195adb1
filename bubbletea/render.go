package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffinsight"
	"github.com/mattn/go-runewidth"
)

const (
	appTitle   = "CodeDiff Insight"
	appTagline = "AI-powered code difference analysis that identifies potential issues and provides intelligent solutions"

	headerHeight = 2
	statusHeight = 1
	// Rows a panel spends on its border and title.
	panelChrome = 3
	// Columns a panel spends on its border and padding.
	panelFrame = 4
)

// layout holds the computed panel sizes for a terminal size.
type layout struct {
	width, height int
	colOuter      int // Outer width of a left column panel
	colInner      int // Content width of every panel
	topOuter      int // Outer height of the input and preview panels
	topInner      int
	bottomOuter   int // Outer height of the issues and solutions panels
	bottomInner   int
}

// computeLayout splits the screen into a header, two rows of two panels, a
// status line and the help view.
func computeLayout(width, height, helpHeight int) layout {
	body := max(height-headerHeight-statusHeight-helpHeight, 2*(panelChrome+1))
	top := body / 2
	bottom := body - top
	col := max(width/2, panelFrame+1)

	return layout{
		width:       width,
		height:      height,
		colOuter:    col,
		colInner:    col - panelFrame,
		topOuter:    top,
		topInner:    top - panelChrome,
		bottomOuter: bottom,
		bottomInner: bottom - panelChrome,
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	v := diffinsight.Render(m.session)
	l := m.layout

	var previewBody string
	if v.ShowPreview {
		previewBody = m.preview.View()
	} else {
		previewBody = m.styleFor(m.styles.Muted).Render("Paste a diff to see the preview")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView("Code Difference Input", "", m.input.View(), m.focus == FocusInput, l.colOuter, l.topOuter),
		m.panelView("Preview", m.statsView(v), previewBody, false, l.width-l.colOuter, l.topOuter),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView(v.Issues.Title, m.copyHint(v.Issues, m.keymap.CopyIssues.Help().Key), m.issues.View(), m.focus == FocusIssues, l.colOuter, l.bottomOuter),
		m.panelView(v.Solutions.Title, m.copyHint(v.Solutions, m.keymap.CopySolutions.Help().Key), m.solutions.View(), m.focus == FocusSolutions, l.width-l.colOuter, l.bottomOuter),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		top,
		bottom,
		m.statusView(v),
		m.help.View(m.keymap),
	)
}

func (m Model) headerView() string {
	title := m.styleFor(m.styles.Title).Bold(true).Render(appTitle)
	tagline := m.styleFor(m.styles.Subtitle).Render(runewidth.Truncate(appTagline, max(m.layout.width, 0), "…"))
	return lipgloss.JoinVertical(lipgloss.Left, title, tagline)
}

// panelView draws a bordered panel with a title line above body.
func (m Model) panelView(title, note, body string, focused bool, width, height int) string {
	border := m.styles.Border
	if focused {
		border = m.styles.Focus
	}

	heading := m.newStyle().Bold(true).Render(title)
	if note != "" {
		heading += "  " + note
	}

	return m.newStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border.Foreground)).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Render(heading + "\n" + body)
}

func (m Model) statsView(v diffinsight.View) string {
	if !v.ShowPreview {
		return ""
	}
	added := m.styleFor(diffinsight.ColorPair{Foreground: m.styles.Addition.Foreground}).Render(fmt.Sprintf("+%d", v.Stats.Added))
	deleted := m.styleFor(diffinsight.ColorPair{Foreground: m.styles.Deletion.Foreground}).Render(fmt.Sprintf("-%d", v.Stats.Deleted))
	return added + " " + deleted
}

func (m Model) copyHint(p diffinsight.Panel, keys string) string {
	if !p.Copyable {
		return ""
	}
	return m.styleFor(m.styles.Muted).Render(keys + " copy")
}

// statusView renders the analyze action, a failure line and the toast.
func (m Model) statusView(v diffinsight.View) string {
	label := " " + v.AnalyzeLabel + " "
	if v.Busy {
		label = " " + m.spinner.View() + v.AnalyzeLabel + " "
	}
	buttonColors := m.styles.Button
	if !v.AnalyzeEnabled {
		buttonColors = m.styles.Disabled
	}
	left := m.styleFor(buttonColors).Bold(true).Render(label)
	if v.Failure != "" {
		left += " " + m.styleFor(diffinsight.ColorPair{Foreground: m.styles.ToastError.Background}).Render(v.Failure)
	}

	t, ok := m.Toast()
	if !ok {
		return truncateStyled(left, m.layout.width)
	}

	var colors diffinsight.ColorPair
	switch t.Severity {
	case diffinsight.SeveritySuccess:
		colors = m.styles.ToastSuccess
	case diffinsight.SeverityError:
		colors = m.styles.ToastError
	default:
		colors = m.styles.ToastInfo
	}
	room := max(m.layout.width-lipgloss.Width(left)-1, 0)
	text := runewidth.Truncate(" "+t.Title+": "+t.Description+" ", room, "…")
	right := m.styleFor(colors).Render(text)

	gap := max(m.layout.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// truncateStyled keeps a styled line from wrapping when it is too wide.
func truncateStyled(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// refreshResults re-renders both result panels from the session.
func (m *Model) refreshResults() {
	if !m.ready {
		return
	}
	v := diffinsight.Render(m.session)
	m.issues.SetContent(m.panelContent(v.Issues, m.styles.Issue))
	m.solutions.SetContent(m.panelContent(v.Solutions, m.styles.Solution))
}

func (m Model) panelContent(p diffinsight.Panel, colors diffinsight.ColorPair) string {
	width := m.layout.colInner
	muted := m.styleFor(m.styles.Muted)

	var blocks []string
	if p.Progress != "" {
		blocks = append(blocks, m.spinner.View()+muted.Render(p.Progress))
	}
	if p.Placeholder != "" {
		blocks = append(blocks, muted.Render(p.Placeholder))
	}

	marker := m.styleFor(colors).Bold(true)
	text := m.newStyle().Width(max(width-4, 1))
	for i, item := range p.Items {
		num := marker.Render(fmt.Sprintf("%2d. ", i+1))
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, num, text.Render(item)))
	}
	return strings.Join(blocks, "\n")
}

// refreshPreview re-renders the preview when the buffer or width changed.
func (m *Model) refreshPreview() {
	if !m.ready {
		return
	}
	input := m.session.Input()
	if input == m.previewInput && m.layout.colInner == m.previewWidth {
		return
	}
	m.previewInput = input
	m.previewWidth = m.layout.colInner
	m.preview.SetContent(m.renderPreview(diffinsight.CollectLines(input), m.layout.colInner))
}

// renderPreview renders each line in its category's colors, highlighting
// line bodies when a tokenizer is configured and the language is known.
// Lines are truncated to width so the viewport never wraps them.
func (m Model) renderPreview(lines []diffinsight.DiffLine, width int) string {
	tokens := m.tokenizePreview(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		colors := m.colorsFor(line.Category)
		if tokens != nil {
			out[i] = m.renderTokenLine(line, tokens[i], colors, width)
			continue
		}
		out[i] = m.renderPlainLine(line, colors, width)
	}
	return strings.Join(out, "\n")
}

// tokenizePreview returns the tokens of each line body, or nil when
// highlighting is off or the tokenizer disagrees about the line count.
func (m Model) tokenizePreview(lines []diffinsight.DiffLine) [][]diffinsight.Token {
	if m.tokenizer == nil {
		return nil
	}
	language := m.language
	if m.languageDetector != nil {
		language = m.languageDetector.Detect(m.language, m.session.Input())
	}
	if language == "" {
		return nil
	}

	bodies := make([]string, len(lines))
	for i, line := range lines {
		_, body := line.Split()
		bodies[i] = strings.TrimSuffix(body, "\r")
	}
	tokens := m.tokenizer.TokenizeLines(language, strings.Join(bodies, "\n"))
	if len(tokens) != len(lines) {
		return nil
	}
	return tokens
}

func (m Model) colorsFor(c diffinsight.LineCategory) diffinsight.ColorPair {
	switch c {
	case diffinsight.Addition:
		return m.styles.Addition
	case diffinsight.Deletion:
		return m.styles.Deletion
	default:
		return m.styles.Neutral
	}
}

func (m Model) renderPlainLine(line diffinsight.DiffLine, colors diffinsight.ColorPair, width int) string {
	text := ExpandTabs(displayText(line), 0)
	if width > 0 {
		text = padLine(runewidth.Truncate(text, width, "…"), width)
	}
	return m.styleFor(colors).Render(text)
}

// renderTokenLine renders the marker in the line colors and each token with
// its syntax foreground over the line background. A width of zero or less
// disables truncation and padding.
func (m Model) renderTokenLine(line diffinsight.DiffLine, tokens []diffinsight.Token, colors diffinsight.ColorPair, width int) string {
	base := m.styleFor(colors)
	marker, _ := line.Split()

	var sb strings.Builder
	sb.WriteString(base.Render(marker))
	col := runewidth.StringWidth(marker)

	for _, tok := range tokens {
		if width > 0 && col >= width {
			break
		}
		text := ExpandTabs(tok.Text, col)
		if width > 0 && col+runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width-col, "…")
		}

		style := base
		if tok.Style.Foreground != "" {
			style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(text))
		col += runewidth.StringWidth(text)
	}

	if col < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-col)))
	}
	return sb.String()
}

// displayText is the line as shown: a carriage return left by CRLF input
// would move the cursor, so it is dropped.
func displayText(line diffinsight.DiffLine) string {
	line.Text = strings.TrimSuffix(line.Text, "\r")
	return line.Display()
}

// padLine pads a line with spaces to the given display width.
func padLine(line string, width int) string {
	w := runewidth.StringWidth(line)
	if w >= width {
		return line
	}
	return line + strings.Repeat(" ", width-w)
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// styleFor creates a lipgloss style from a ColorPair.
func (m Model) styleFor(cp diffinsight.ColorPair) lipgloss.Style {
	style := m.newStyle()
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}
