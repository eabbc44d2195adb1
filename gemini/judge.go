package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.RubricJudge = (*Judge)(nil)

// Judge implements diffinsight.RubricJudge using Google Gemini.
type Judge struct {
	client GenerativeClient
	model  string
}

// NewJudge creates a new Judge.
func NewJudge(client GenerativeClient, model string) *Judge {
	return &Judge{client: client, model: model}
}

// Judge evaluates whether output satisfies criterion.
func (j *Judge) Judge(ctx context.Context, criterion, output string) (*diffinsight.RubricResult, error) {
	prompt := fmt.Sprintf(`Decide whether the output below satisfies the criterion.

<criterion>
%s
</criterion>

<output>
%s
</output>

Respond with JSON: {"passed": true|false, "reasoning": "one or two sentences"}`, criterion, output)

	temp := float32(0)
	config := &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{Text: "You are a strict evaluator. Judge only against the stated criterion."}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"passed":    {Type: TypeBoolean},
				"reasoning": {Type: TypeString},
			},
			Required:         []string{"passed", "reasoning"},
			PropertyOrdering: []string{"passed", "reasoning"},
		},
	}

	resp, err := j.client.GenerateContent(ctx, j.model, []*Content{{Parts: []*Part{{Text: prompt}}}}, config)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	var parsed struct {
		Passed    bool   `json:"passed"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse judgment: %w", err)
	}
	return &diffinsight.RubricResult{Passed: parsed.Passed, Reasoning: parsed.Reasoning}, nil
}
