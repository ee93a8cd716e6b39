package qagen

import "fmt"

const promptTemplate = `You are an experienced technical interviewer who writes concise, practical interview questions with strong, succinct answers.

Write interview questions tailored to the role below at three difficulty levels:
- "basic": fundamentals every candidate for the role should know
- "intermediate": applied questions about real work in the role
- "expert": deep design, trade-off and troubleshooting questions

Write exactly %d question/answer pairs per level.

Respond with ONLY one JSON object, no code fences and no extra text, in this format:
{
  "basic": [{"question": "...", "answer": "..."}],
  "intermediate": [{"question": "...", "answer": "..."}],
  "expert": [{"question": "...", "answer": "..."}]
}

Job Title: %s
Job Description: %s`

// BuildPrompt renders the generation prompt. The same inputs always produce the same prompt.
func BuildPrompt(jobTitle, jobDescription string, perLevel int) string {
	if perLevel <= 0 {
		perLevel = DefaultQuestionsPerLevel
	}
	return fmt.Sprintf(promptTemplate, perLevel, jobTitle, jobDescription)
}
