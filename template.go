package postcrew

import (
	"fmt"
	"maps"
	"strings"
	"text/template"
)

// PromptTemplate renders user messages from text/template sources. Values are
// inserted as data, so template syntax inside a value is kept verbatim.
//
//	prompt, err := NewPromptTemplate().User("Topic: {{.topic}}", vars).Build()
type PromptTemplate struct {
	sources []string
	vars    []map[string]any
}

// NewPromptTemplate creates an empty PromptTemplate.
func NewPromptTemplate() *PromptTemplate {
	return &PromptTemplate{}
}

// User queues a user message rendered from source. Later maps override
// earlier ones key by key.
func (p *PromptTemplate) User(source string, vars ...map[string]any) *PromptTemplate {
	merged := make(map[string]any)
	for _, v := range vars {
		maps.Copy(merged, v)
	}
	p.sources = append(p.sources, source)
	p.vars = append(p.vars, merged)
	return p
}

// Build renders every queued message. A key missing from the vars is an error.
func (p *PromptTemplate) Build() (*Prompt, error) {
	messages := make([]*Message, 0, len(p.sources))
	for i, source := range p.sources {
		t, err := template.New(fmt.Sprintf("user-%d", i)).Option("missingkey=error").Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parsing prompt %d: %w", i, err)
		}
		var buf strings.Builder
		if err := t.Execute(&buf, p.vars[i]); err != nil {
			return nil, fmt.Errorf("rendering prompt %d: %w", i, err)
		}
		messages = append(messages, UserMessage(buf.String()))
	}
	return NewPrompt(messages...), nil
}
