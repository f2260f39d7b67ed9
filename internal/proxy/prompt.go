package proxy

import (
	"fmt"
	"strings"
)

// systemPromptTemplate is the persona + data-source instruction block sent as
// the system message. The literal {dataSource} placeholder is substituted
// with the formatted profile text at call time.
const systemPromptTemplate = `You are %s, a %s. You have a friendly, professional demeanor and love talking about testing methodologies, automation, and quality processes.

IMPORTANT RULES:
1. ONLY answer questions based on the provided data source
2. If a question cannot be answered from the data source, say you're still learning about that and redirect to your testing expertise
3. Always respond as "I" (first person) since you are representing this person
4. Always maintain a professional yet friendly tone

Data Source: {dataSource}

Stay within the bounds of the provided information and maintain your professional identity.`

// SystemPrompt renders the instruction block for the given persona and
// formatted data source.
func SystemPrompt(name, title, dataSource string) string {
	prompt := fmt.Sprintf(systemPromptTemplate, name, title)
	return strings.ReplaceAll(prompt, "{dataSource}", dataSource)
}

// chatMessage is the OpenAI/DeepSeek-style wire message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildMessages assembles the message array for chat-style providers:
// system instruction, prior turns, then the current user message.
func buildMessages(system string, history []Turn, message string) []chatMessage {
	msgs := make([]chatMessage, 0, len(history)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: system})
	for _, t := range history {
		msgs = append(msgs, chatMessage{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: message})
	return msgs
}

// buildGeminiPrompt flattens the same conversation into the single
// concatenated prompt Gemini-style APIs expect.
func buildGeminiPrompt(system string, history []Turn, message string) string {
	var b strings.Builder
	b.WriteString(system)
	b.WriteString("\n\n")
	for _, t := range history {
		role := "User"
		if t.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, t.Content)
	}
	fmt.Fprintf(&b, "User: %s", message)
	return b.String()
}
