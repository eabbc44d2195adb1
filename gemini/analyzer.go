package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.Analyzer = (*Analyzer)(nil)

// DefaultAnalyzeTimeout is the default timeout for a single analyze call.
const DefaultAnalyzeTimeout = 60 * time.Second

// Analyzer implements diffinsight.Analyzer using Google Gemini.
type Analyzer struct {
	client        GenerativeClient
	model         string
	formatter     diffinsight.PromptFormatter
	timeout       time.Duration
	thinkingLevel string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithThinkingLevel sets the model thinking level ("LOW", "HIGH", ...).
func WithThinkingLevel(level string) AnalyzerOption {
	return func(a *Analyzer) {
		a.thinkingLevel = level
	}
}

// WithFormatter replaces the prompt formatter.
func WithFormatter(f diffinsight.PromptFormatter) AnalyzerOption {
	return func(a *Analyzer) {
		a.formatter = f
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client GenerativeClient, model string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client:    client,
		model:     model,
		formatter: &diffinsight.DefaultFormatter{},
		timeout:   DefaultAnalyzeTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// analysisResponse mirrors the response schema. Pointers distinguish a
// missing list from an empty one.
type analysisResponse struct {
	Issues    *[]string `json:"issues"`
	Solutions *[]string `json:"solutions"`
}

// Analyze asks Gemini for issues and solutions in diff.
func (a *Analyzer) Analyze(ctx context.Context, diff string) (*diffinsight.AnalysisResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := BuildAnalysisPrompt(a.formatter.Format(diff))
	contents := []*Content{{
		Parts: []*Part{{Text: prompt}},
	}}
	config := BuildAnalysisConfig()
	config.ThinkingLevel = a.thinkingLevel

	resp, err := a.client.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: %w: nil response", diffinsight.ErrMalformedResponse)
	}

	return ParseAnalysis(resp.Text)
}

// ParseAnalysis decodes a JSON analysis response. Both lists must be present;
// blank entries are dropped.
func ParseAnalysis(text string) (*diffinsight.AnalysisResult, error) {
	var parsed analysisResponse
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: %w: failed to parse response: %v", diffinsight.ErrMalformedResponse, err)
	}
	if parsed.Issues == nil || parsed.Solutions == nil {
		return nil, fmt.Errorf("gemini: %w: response must contain issues and solutions", diffinsight.ErrMalformedResponse)
	}

	return &diffinsight.AnalysisResult{
		Issues:    compact(*parsed.Issues),
		Solutions: compact(*parsed.Solutions),
	}, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "```"))
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// BuildAnalysisPrompt creates the user prompt for analysis.
func BuildAnalysisPrompt(formattedInput string) string {
	return fmt.Sprintf(`Review this code change and report what could go wrong with it.

%s

## Task

Lines marked A were added, lines marked D were removed, other lines are unchanged context.
The input may be a unified diff, git diff output, or a loose before/after comparison.

Report:
- **issues**: concrete problems introduced or left in place by the change (bugs, unsafe
  handling, missing error handling, deprecated APIs, performance problems). Most severe first.
- **solutions**: concrete, actionable fixes. Order them by importance.

Each entry is one sentence. Refer to line numbers when it helps. Do not invent problems in
code that is not shown; return empty lists if the change looks correct.

Respond with JSON matching this schema:
{
  "issues": ["..."],
  "solutions": ["..."]
}`, formattedInput)
}

// BuildAnalysisConfig returns config for analysis calls.
func BuildAnalysisConfig() *GenerateContentConfig {
	temp := float32(0.2) // Low temperature keeps findings stable across reruns
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a senior code reviewer. You read code diffs and point out potential issues together with suggested solutions.

Be precise and terse. Prefer a few well-founded findings over many speculative ones.`,
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   AnalysisSchema(),
	}
}

// AnalysisSchema returns the response schema for analysis calls.
func AnalysisSchema() *Schema {
	list := func(desc string) *Schema {
		return &Schema{
			Type:        TypeArray,
			Items:       &Schema{Type: TypeString},
			Description: desc,
		}
	}
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"issues":    list("Potential issues, most severe first"),
			"solutions": list("Suggested solutions, most important first"),
		},
		Required:         []string{"issues", "solutions"},
		PropertyOrdering: []string{"issues", "solutions"},
	}
}
