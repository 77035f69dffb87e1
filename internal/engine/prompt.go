package engine

import "fmt"

// reviewPromptTemplate is the fixed review instruction. It asks for the
// single JSON object shape the coordinator parses; the engine's compliance
// is never assumed.
const reviewPromptTemplate = `You are an experienced software engineer. Review the following code and point out problems and possible improvements.

Filename: %s

Code:
` + "```" + `
%s
` + "```" + `

Review the code from these angles:
1. Bugs and potential defects
2. Security problems
3. Performance problems
4. Code style and readability
5. Best practices

Answer with a single JSON object in the following format:
{
  "issues": [
    {
      "type": "bug|security|performance|style|best-practice",
      "severity": "low|medium|high|critical",
      "line": line number (when applicable),
      "description": "what the problem is",
      "recommendation": "how to fix it"
    }
  ],
  "summary": "overall assessment"
}`

// BuildReviewPrompt embeds one file's name and content into the review
// instruction.
func BuildReviewPrompt(code, filename string) string {
	return fmt.Sprintf(reviewPromptTemplate, filename, code)
}
