package postcrew

import "strings"

// Prompt is an ordered sequence of rendered messages.
type Prompt struct {
	Messages []*Message `json:"messages"`
}

// NewPrompt creates a new Prompt with the given messages.
func NewPrompt(messages ...*Message) *Prompt {
	return &Prompt{
		Messages: messages,
	}
}

// String returns the text of all messages joined by newlines.
func (p *Prompt) String() string {
	texts := make([]string, 0, len(p.Messages))
	for _, msg := range p.Messages {
		texts = append(texts, msg.Text())
	}
	return strings.Join(texts, "\n")
}
