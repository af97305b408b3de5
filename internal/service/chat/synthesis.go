package chat

import (
	"fmt"
	"strings"

	"github.com/w-h-a/qa/completer"
	"github.com/w-h-a/qa/retriever"
)

// AnswerRefusal is the exact sentence returned whenever no retrieved context
// qualifies, and the sentence the model is instructed to echo when the
// context does not contain the answer.
const AnswerRefusal = "I don't know based on the provided documents."

// contextBlock renders kept chunks as bracket-ranked excerpts the model can
// cite by number.
func contextBlock(chunks []retriever.Chunk) string {
	excerpts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		excerpts = append(excerpts, fmt.Sprintf("[%d] (%s) %s", c.Rank, c.Source, c.Text))
	}
	return strings.Join(excerpts, "\n\n")
}

// buildRagMessages instructs the model to answer strictly from context.
func (s *Service) buildRagMessages(question string, chunks []retriever.Chunk) []completer.Message {
	var sb strings.Builder

	sb.WriteString("You MUST answer using ONLY the provided context.\n")
	sb.WriteString("- If the answer is not explicitly present in the context, reply exactly:\n")
	sb.WriteString("\"" + AnswerRefusal + "\"\n")
	sb.WriteString("- When you use a piece of context, cite it as [1], [2] etc based on the context rank.\n")
	sb.WriteString("\nContext:\n")
	sb.WriteString(contextBlock(chunks))
	sb.WriteString("\n\nQuestion:\n")
	sb.WriteString(question)

	return []completer.Message{
		{Role: completer.RoleSystem, Content: s.options.SystemPrompt},
		{Role: completer.RoleUser, Content: sb.String()},
	}
}

// buildHybridMessages allows tool use for exact computation alongside
// citation of the retrieved context.
func (s *Service) buildHybridMessages(question string, chunks []retriever.Chunk) []completer.Message {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant.\n")
	sb.WriteString("- Use the provided context for policy/process facts.\n")
	sb.WriteString("- Use tools for exact calculations if needed.\n")
	sb.WriteString("- If something is missing from context, say you don't know.\n")
	sb.WriteString("\nContext:\n")
	sb.WriteString(contextBlock(chunks))
	sb.WriteString("\n\nUser question:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer with citations like [1], [2] when you use context.")

	return []completer.Message{
		{Role: completer.RoleSystem, Content: s.options.SystemPrompt},
		{Role: completer.RoleUser, Content: sb.String()},
	}
}

// buildDirectMessages carries the raw user message into the tool loop; the
// model answers without tools when none are needed.
func (s *Service) buildDirectMessages(question string) []completer.Message {
	return []completer.Message{
		{Role: completer.RoleSystem, Content: s.options.SystemPrompt},
		{Role: completer.RoleUser, Content: question},
	}
}
