package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/postcrew/postcrew"
)

// ErrPromptBlocked is returned when the service refuses the prompt.
var ErrPromptBlocked = errors.New("prompt blocked by the model service")

var _ postcrew.ModelProvider = (*Provider)(nil)

// Provider serves postcrew model requests with the Gemini API.
type Provider struct {
	opts   options
	client *genai.Client
}

// NewProvider creates a Gemini provider from a genai client configuration.
func NewProvider(ctx context.Context, clientConfig *genai.ClientConfig, opts ...Option) (*Provider, error) {
	if clientConfig == nil {
		return nil, fmt.Errorf("clientConfig cannot be nil")
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}
	return NewProviderFromClient(client, opts...), nil
}

// NewProviderFromClient creates a Gemini provider around an existing client.
func NewProviderFromClient(client *genai.Client, opts ...Option) *Provider {
	p := &Provider{client: client}
	for _, apply := range opts {
		apply(&p.opts)
	}
	return p
}

// Generate executes the request and returns the completed model turn.
func (p *Provider) Generate(ctx context.Context, req *postcrew.ModelRequest) (*postcrew.ModelResponse, error) {
	system, contents, err := convertRequestToGenAI(req)
	if err != nil {
		return nil, err
	}
	config, err := p.toGenerateConfig(req)
	if err != nil {
		return nil, err
	}
	config.SystemInstruction = system
	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	return convertGenAIToPostcrew(resp, postcrew.StatusCompleted)
}

// NewStreaming yields every chunk as an incomplete message, then one completed
// message that accumulates the whole turn.
func (p *Provider) NewStreaming(ctx context.Context, req *postcrew.ModelRequest) postcrew.Generator[*postcrew.ModelResponse, error] {
	return func(yield func(*postcrew.ModelResponse, error) bool) {
		system, contents, err := convertRequestToGenAI(req)
		if err != nil {
			yield(nil, err)
			return
		}
		config, err := p.toGenerateConfig(req)
		if err != nil {
			yield(nil, err)
			return
		}
		config.SystemInstruction = system
		accumulated := postcrew.NewMessage(postcrew.RoleAssistant)
		for chunk, err := range p.client.Models.GenerateContentStream(ctx, req.Model, contents, config) {
			if err != nil {
				yield(nil, fmt.Errorf("streaming content: %w", err))
				return
			}
			response, err := convertGenAIToPostcrew(chunk, postcrew.StatusIncomplete)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(response, nil) {
				return
			}
			accumulate(accumulated, response.Message)
		}
		if len(accumulated.ToolParts()) > 0 {
			accumulated.Role = postcrew.RoleTool
		}
		accumulated.Status = postcrew.StatusCompleted
		yield(&postcrew.ModelResponse{Message: accumulated}, nil)
	}
}

func (p *Provider) toGenerateConfig(req *postcrew.ModelRequest) (*genai.GenerateContentConfig, error) {
	var config genai.GenerateContentConfig
	if p.opts.Temperature != nil {
		config.Temperature = p.opts.Temperature
	}
	if p.opts.TopP != nil {
		config.TopP = p.opts.TopP
	}
	if p.opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = p.opts.MaxOutputTokens
	}
	if p.opts.ThinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: p.opts.ThinkingBudget}
	}
	if len(p.opts.SafetySettings) > 0 {
		config.SafetySettings = p.opts.SafetySettings
	}
	if len(req.Tools) > 0 {
		tools, err := convertToolsToGenAI(req.Tools)
		if err != nil {
			return nil, fmt.Errorf("converting tools: %w", err)
		}
		config.Tools = tools
	}
	return &config, nil
}

// accumulate folds a streaming chunk into the running turn.
func accumulate(dst, chunk *postcrew.Message) {
	for _, part := range chunk.Parts {
		text, ok := part.(postcrew.TextPart)
		if ok && len(dst.Parts) > 0 {
			if last, ok := dst.Parts[len(dst.Parts)-1].(postcrew.TextPart); ok {
				dst.Parts[len(dst.Parts)-1] = postcrew.TextPart{Text: last.Text + text.Text}
				continue
			}
		}
		dst.Parts = append(dst.Parts, part)
	}
	if chunk.FinishReason != "" {
		dst.FinishReason = chunk.FinishReason
	}
	if chunk.Grounding != nil {
		dst.Grounding = chunk.Grounding
	}
	if chunk.TokenUsage.TotalTokens > 0 {
		dst.TokenUsage = chunk.TokenUsage
	}
}
