package diffinsight

import "context"

// RubricResult is a judge's verdict on one criterion.
type RubricResult struct {
	Passed    bool
	Reasoning string
}

// RubricJudge decides whether output satisfies a criterion written in plain
// language. Evals use it to check analyzer output that has no single right
// answer.
type RubricJudge interface {
	Judge(ctx context.Context, criterion, output string) (*RubricResult, error)
}

// Rubric lists what a good analysis of one diff contains. Issue criteria are
// judged against the numbered issues and solution criteria against the
// numbered solutions, one criterion at a time.
type Rubric struct {
	Issues    []string
	Solutions []string
}

// Criteria returns each criterion paired with the list output it is judged
// against.
func (r Rubric) Criteria(result *AnalysisResult) [][2]string {
	var issues, solutions string
	if result != nil {
		issues = FormatNumbered(result.Issues)
		solutions = FormatNumbered(result.Solutions)
	}

	out := make([][2]string, 0, len(r.Issues)+len(r.Solutions))
	for _, c := range r.Issues {
		out = append(out, [2]string{c, issues})
	}
	for _, c := range r.Solutions {
		out = append(out, [2]string{c, solutions})
	}
	return out
}
