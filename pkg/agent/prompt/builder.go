package prompt

import (
	"strings"

	"doc-chat-be/pkg/llm"
)

// ContextualBuilder assembles the context-grounded prompt that replaces the
// final turn of the conversation on the RAG path.
type ContextualBuilder struct {
	systemPrompt string
	context      string
	userQuery    string
}

func NewContextualBuilder(systemPrompt, context, userQuery string) *ContextualBuilder {
	return &ContextualBuilder{
		systemPrompt: systemPrompt,
		context:      context,
		userQuery:    userQuery,
	}
}

// Build produces a single instruction block: persona, snippet handling
// rules, then the raw context and query embedded verbatim between
// delimiters. The same inputs always produce the same output.
func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeGuidelines(&prompt)
	b.writeSnippets(&prompt)
	b.writeUserQuestion(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString(b.systemPrompt)
	prompt.WriteString(" Use the following document snippets as your primary source of knowledge to answer the user's question. The snippets are from a document the user just uploaded.\n\n")
}

func (b *ContextualBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("If the user's question is general, like \"what is this document about?\" or \"summarize this file\", provide a concise summary of the provided context.\n\n")
	prompt.WriteString("If the user asks a specific question, answer it directly using only the information in the snippets.\n\n")
	prompt.WriteString("If the snippets do not contain the answer to a specific question, state that the provided document doesn't seem to contain that information.\n\n")
}

func (b *ContextualBuilder) writeSnippets(prompt *strings.Builder) {
	prompt.WriteString("DOCUMENT SNIPPETS:\n---\n")
	prompt.WriteString(b.context)
	prompt.WriteString("\n---\n\n")
}

func (b *ContextualBuilder) writeUserQuestion(prompt *strings.Builder) {
	prompt.WriteString("USER'S QUESTION:\n\"")
	prompt.WriteString(b.userQuery)
	prompt.WriteString("\"")
}

// BuildContextual is the convenience form used by the generation node.
func BuildContextual(systemPrompt, context, userQuery string) string {
	return NewContextualBuilder(systemPrompt, context, userQuery).Build()
}

// BuildDirect produces the direct-path message sequence: the system
// instruction first, followed by the original history unmodified in role and
// content.
func BuildDirect(systemPrompt string, history []llm.Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	out = append(out, history...)
	return out
}
