package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = "You answer trivia questions. Reply with exactly one of the provided options, verbatim, and nothing else."

// buildUserPrompt renders the question and its options for the model.
func buildUserPrompt(question string, options []string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Question: %s\n\nOptions:\n", strings.TrimSpace(question))
	for _, option := range options {
		fmt.Fprintf(&builder, "- %s\n", strings.TrimSpace(option))
	}
	builder.WriteString("\nReply with one option, verbatim.")
	return builder.String()
}
