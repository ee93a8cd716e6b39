package qagen

import (
	"testing"

	"interview-agent/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseQASet(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOutcome Outcome
		wantCounts  [3]int
	}{
		{
			name:        "plain object",
			raw:         `{"basic":[{"question":"Q1","answer":"A1"}],"intermediate":[{"question":"Q2","answer":"A2"}],"expert":[{"question":"Q3","answer":"A3"},{"question":"Q4","answer":"A4"}]}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 1, 2},
		},
		{
			name:        "code fence and prose",
			raw:         "Sure! Here you go:\n```json\n{\"basic\":[{\"question\":\"Q\",\"answer\":\"A\"}]}\n```\nGood luck.",
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 0, 0},
		},
		{
			name:        "think block removed",
			raw:         `<think>maybe {"basic": []} is right</think>{"expert":[{"question":"Q","answer":"A"}]}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{0, 0, 1},
		},
		{
			name:        "case-insensitive keys and aliases",
			raw:         `{"Beginner":[{"Question":"Q","Answer":"A"}],"INTERMEDIATE":[{"q":"Q","a":"A"}],"Advanced":[{"question":"Q","answer":"A"}]}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 1, 1},
		},
		{
			name:        "wrapper key",
			raw:         `{"levels":{"basic":[{"question":"Q","answer":"A"}],"expert":[]}}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 0, 0},
		},
		{
			name:        "blank questions dropped",
			raw:         `{"basic":[{"question":"  ","answer":"A"},{"answer":"orphan"},{"question":"Q","answer":""}]}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 0, 0},
		},
		{
			name:        "malformed level becomes empty",
			raw:         `{"basic":"not a list","intermediate":[{"question":"Q","answer":"A"}, 5, "x"],"expert":null}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{0, 1, 0},
		},
		{
			name:        "payload followed by prose with braces",
			raw:         "```json\n{\"basic\":[{\"question\":\"Q1\",\"answer\":\"A1\"}],\"intermediate\":[],\"expert\":[]}\n```\nTip: adapt answers to the {company} context.",
			wantOutcome: Parsed,
			wantCounts:  [3]int{1, 0, 0},
		},
		{
			name:        "prose braces before payload",
			raw:         `Fill in {role} below. {"expert":[{"question":"Q","answer":"A"}]} Thanks {}`,
			wantOutcome: Parsed,
			wantCounts:  [3]int{0, 0, 1},
		},
		{
			name:        "no json",
			raw:         "I cannot help with that.",
			wantOutcome: Unparseable,
		},
		{
			name:        "invalid json",
			raw:         `{"basic": [ {"question": "Q" ]`,
			wantOutcome: Unparseable,
		},
		{
			name:        "object without levels",
			raw:         `{"questions":["a","b"]}`,
			wantOutcome: Unparseable,
		},
		{
			name:        "empty",
			raw:         "",
			wantOutcome: Unparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQASet(tt.raw)

			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Len(t, got.Set.Basic, tt.wantCounts[0])
			assert.Len(t, got.Set.Intermediate, tt.wantCounts[1])
			assert.Len(t, got.Set.Expert, tt.wantCounts[2])
			assert.NotNil(t, got.Set.Basic)
			assert.NotNil(t, got.Set.Intermediate)
			assert.NotNil(t, got.Set.Expert)
			if tt.wantOutcome == Unparseable {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestParseQASet_TrimsPairs(t *testing.T) {
	got := ParseQASet(`{"basic":[{"question":"  What is DNS?  ","answer":"\tName resolution.\n"}]}`)

	assert.Equal(t, []domain.QAPair{{Question: "What is DNS?", Answer: "Name resolution."}}, got.Set.Basic)
}

func TestParseQASet_MergesAliasesInStableOrder(t *testing.T) {
	got := ParseQASet(`{"expert":[{"question":"E1","answer":"a"}],"advanced":[{"question":"A1","answer":"a"}]}`)

	assert.Equal(t, Parsed, got.Outcome)
	assert.Equal(t, []domain.QAPair{
		{Question: "A1", Answer: "a"},
		{Question: "E1", Answer: "a"},
	}, got.Set.Expert)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Platform Engineer", "Terraform and AWS", 3)

	assert.Contains(t, p, "Job Title: Platform Engineer")
	assert.Contains(t, p, "Job Description: Terraform and AWS")
	assert.Contains(t, p, "exactly 3 question/answer pairs")
	assert.Contains(t, p, `"intermediate"`)
	assert.Equal(t, p, BuildPrompt("Platform Engineer", "Terraform and AWS", 3))
	assert.Contains(t, BuildPrompt("x", "y", 0), "exactly 4 question/answer pairs")
}

func TestParseQASet_CaseCollidingKeysPreferLowerCase(t *testing.T) {
	raw := `{"Basic":[{"question":"upper","answer":"a"}],"basic":[{"question":"lower","answer":"a"}],"intermediate":[],"expert":[]}`

	for i := 0; i < 50; i++ {
		got := ParseQASet(raw)
		assert.Equal(t, []domain.QAPair{{Question: "lower", Answer: "a"}}, got.Set.Basic)
	}
}
