// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"strings"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// BuildPrompt renders the context blob and the conversation into one prompt.
//
// The layout is fixed:
//
//	Context:
//	<context>
//
//	User: <content>
//	Assistant: <content>
//	Assistant:
//
// The context block is omitted when context is empty.
func BuildPrompt(context string, turns []entities.Turn) string {
	var sb strings.Builder
	if context != "" {
		sb.WriteString("Context:\n")
		sb.WriteString(context)
		sb.WriteString("\n\n")
	}
	for _, turn := range turns {
		sb.WriteString(turn.Role.Title())
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
