// Package entities contains core business entities.
// These are pure domain objects with no external dependencies.
package entities

import (
	"fmt"
	"time"
)

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Title returns the role with its first letter upper-cased, as used in prompts.
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	first := s[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	return string(first) + s[1:]
}

// Turn is one message in a conversation.
// Turns are values; once appended to a conversation they are never edited.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Document represents an uploaded document.
type Document struct {
	Name      string
	Path      string
	Content   string
	Size      int64
	UpdatedAt time.Time
}

// ContextReadError records an uploaded file that could not be used as context.
type ContextReadError struct {
	Filename string
	Err      error
}

func (e ContextReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Filename, e.Err)
}

func (e ContextReadError) Unwrap() error { return e.Err }

// ContextBlob is the concatenated text of all readable uploaded documents.
type ContextBlob struct {
	Text    string
	Sources []string           // Files that contributed to Text, in order
	Skipped []ContextReadError // Files left out of Text
}

// Outcome tells whether a generation came from the backend or the fallback path.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// DefaultReplyText is returned when a backend answers without any text.
const DefaultReplyText = "Sorry, I couldn't generate a response."

// Generation is the result of dispatching one prompt to one model.
type Generation struct {
	Model   string
	Text    string
	Outcome Outcome
	Reason  string // Backend failure that caused a fallback
}

// IsFallback reports whether the text was produced locally instead of by the model.
func (g Generation) IsFallback() bool {
	return g.Outcome == OutcomeFallback
}

// Comparison holds two generations for the same prompt.
type Comparison struct {
	A Generation
	B Generation
}
