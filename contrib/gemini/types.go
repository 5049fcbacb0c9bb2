package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/tools"
)

func convertRequestToGenAI(req *postcrew.ModelRequest) (*genai.Content, []*genai.Content, error) {
	if req == nil {
		return nil, nil, fmt.Errorf("request cannot be nil")
	}
	var (
		system   *genai.Content
		contents []*genai.Content
	)
	if req.Instruction != nil {
		system = &genai.Content{Parts: convertTextPartsToGenAI(req.Instruction.Parts)}
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case postcrew.RoleSystem:
			if system == nil {
				system = &genai.Content{Parts: convertTextPartsToGenAI(msg.Parts)}
			}
		case postcrew.RoleUser:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: convertTextPartsToGenAI(msg.Parts)})
		case postcrew.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: convertTextPartsToGenAI(msg.Parts)})
		case postcrew.RoleTool:
			call, response, err := convertToolTurnToGenAI(msg)
			if err != nil {
				return nil, nil, err
			}
			contents = append(contents, call, response)
		default:
			return nil, nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}
	return system, contents, nil
}

func convertTextPartsToGenAI(parts []postcrew.Part) []*genai.Part {
	res := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if v, ok := part.(postcrew.TextPart); ok && strings.TrimSpace(v.Text) != "" {
			res = append(res, &genai.Part{Text: v.Text})
		}
	}
	return res
}

// convertToolTurnToGenAI splits an executed tool turn into the model's function
// calls and the user's function responses.
func convertToolTurnToGenAI(msg *postcrew.Message) (*genai.Content, *genai.Content, error) {
	call := &genai.Content{Role: genai.RoleModel}
	response := &genai.Content{Role: genai.RoleUser}
	for _, part := range msg.Parts {
		switch v := part.(type) {
		case postcrew.TextPart:
			if strings.TrimSpace(v.Text) != "" {
				call.Parts = append(call.Parts, &genai.Part{Text: v.Text})
			}
		case postcrew.ToolPart:
			args := map[string]any{}
			if strings.TrimSpace(v.Request) != "" {
				if err := json.Unmarshal([]byte(v.Request), &args); err != nil {
					return nil, nil, fmt.Errorf("decoding arguments of %s: %w", v.Name, err)
				}
			}
			call.Parts = append(call.Parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{ID: v.ID, Name: v.Name, Args: args},
			})
			response.Parts = append(response.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{ID: v.ID, Name: v.Name, Response: decodeToolResponse(v.Response)},
			})
		}
	}
	return call, response, nil
}

func decodeToolResponse(raw string) map[string]any {
	response := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return map[string]any{"output": raw}
	}
	return response
}

func convertToolsToGenAI(granted []*tools.Tool) ([]*genai.Tool, error) {
	var (
		result       []*genai.Tool
		declarations []*genai.FunctionDeclaration
	)
	for _, tool := range granted {
		switch tool.Kind {
		case tools.KindGoogleSearch:
			result = append(result, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		case tools.KindFunction:
			declaration := &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
			}
			if tool.InputSchema != nil {
				declaration.ParametersJsonSchema = tool.InputSchema
			}
			declarations = append(declarations, declaration)
		default:
			return nil, fmt.Errorf("unsupported tool kind %q for %s", tool.Kind, tool.Name)
		}
	}
	if len(declarations) > 0 {
		result = append(result, &genai.Tool{FunctionDeclarations: declarations})
	}
	return result, nil
}

func convertGenAIToPostcrew(resp *genai.GenerateContentResponse, status postcrew.Status) (*postcrew.ModelResponse, error) {
	message := postcrew.NewMessage(postcrew.RoleAssistant)
	message.Status = status
	if resp.UsageMetadata != nil {
		message.TokenUsage = postcrew.TokenUsage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: %s", ErrPromptBlocked, resp.PromptFeedback.BlockReason)
		}
		return &postcrew.ModelResponse{Message: message}, nil
	}
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			converted, err := convertGenAIPartToPostcrew(part)
			if err != nil {
				return nil, err
			}
			if converted != nil {
				message.Parts = append(message.Parts, converted)
			}
		}
	}
	if len(message.ToolParts()) > 0 {
		message.Role = postcrew.RoleTool
	}
	message.FinishReason = string(candidate.FinishReason)
	message.Grounding = convertGroundingToPostcrew(candidate.GroundingMetadata)
	return &postcrew.ModelResponse{Message: message}, nil
}

// convertGenAIPartToPostcrew converts a GenAI part; thoughts are dropped.
func convertGenAIPartToPostcrew(part *genai.Part) (postcrew.Part, error) {
	if part == nil || part.Thought {
		return nil, nil
	}
	if part.FunctionCall != nil {
		args, err := json.Marshal(part.FunctionCall.Args)
		if err != nil {
			return nil, fmt.Errorf("encoding arguments of %s: %w", part.FunctionCall.Name, err)
		}
		return postcrew.ToolPart{
			ID:      part.FunctionCall.ID,
			Name:    part.FunctionCall.Name,
			Request: string(args),
		}, nil
	}
	if part.Text == "" {
		return nil, nil
	}
	return postcrew.TextPart{Text: part.Text}, nil
}

func convertGroundingToPostcrew(metadata *genai.GroundingMetadata) *postcrew.Grounding {
	if metadata == nil {
		return nil
	}
	grounding := &postcrew.Grounding{Queries: metadata.WebSearchQueries}
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		grounding.Sources = append(grounding.Sources, postcrew.Source{
			Title:  chunk.Web.Title,
			URI:    chunk.Web.URI,
			Domain: chunk.Web.Domain,
		})
	}
	if len(grounding.Queries) == 0 && len(grounding.Sources) == 0 {
		return nil
	}
	return grounding
}
