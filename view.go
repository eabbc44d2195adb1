package diffinsight

import "strings"

// Labels shown on the analyze action.
const (
	AnalyzeLabel   = "Analyze Code Diff"
	AnalyzingLabel = "Analyzing Code..."
)

// View is the view-model of a Session: everything a renderer needs, derived
// from session state alone.
type View struct {
	ShowPreview    bool       // False while the buffer is empty
	Preview        []DiffLine // Classified buffer lines
	Stats          LineStats
	AnalyzeEnabled bool
	AnalyzeLabel   string
	Busy           bool
	Issues         Panel
	Solutions      Panel
	Failure        string // Set only in the Failed state
}

// Panel is the view-model of one result list.
type Panel struct {
	Title       string
	Label       string   // Used in copy notifications
	Placeholder string   // Shown when there is no result and nothing is running
	Progress    string   // Shown while running
	Items       []string // Held result items, possibly from a previous run
	Copyable    bool
}

// Render derives the View for s. It has no side effects.
func Render(s *Session) View {
	busy := s.Busy()
	result := s.Result()

	v := View{
		ShowPreview:    s.Input() != "",
		AnalyzeEnabled: !busy && strings.TrimSpace(s.Input()) != "",
		AnalyzeLabel:   AnalyzeLabel,
		Busy:           busy,
		Issues: Panel{
			Title: "Potential Issues",
			Label: LabelIssues,
		},
		Solutions: Panel{
			Title: "Suggested Solutions",
			Label: LabelSolutions,
		},
	}
	if busy {
		v.AnalyzeLabel = AnalyzingLabel
	}
	if v.ShowPreview {
		v.Preview = CollectLines(s.Input())
		v.Stats = CountLines(s.Input())
	}

	switch {
	case busy:
		v.Issues.Progress = "Scanning for issues..."
		v.Solutions.Progress = "Generating solutions..."
	case result == nil:
		v.Issues.Placeholder = "Issues will appear here after analysis"
		v.Solutions.Placeholder = "Solutions will appear here after analysis"
	}

	if result != nil {
		v.Issues.Items = result.Issues
		v.Issues.Copyable = true
		v.Solutions.Items = result.Solutions
		v.Solutions.Copyable = true
	}

	if err := s.Err(); err != nil {
		v.Failure = err.Error()
	}
	return v
}
