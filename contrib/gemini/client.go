package gemini

import (
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

// CloudPlatformScope is the OAuth scope requested for Vertex AI.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// APIKeyConfig returns a Gemini API client configuration. An empty baseURL
// keeps the public endpoint.
func APIKeyConfig(apiKey, baseURL string) *genai.ClientConfig {
	return &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	}
}

// VertexConfig returns a Vertex AI client configuration authenticated with
// application default credentials.
func VertexConfig(project, location string) (*genai.ClientConfig, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{CloudPlatformScope},
	})
	if err != nil {
		return nil, fmt.Errorf("detecting default credentials: %w", err)
	}
	return &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     project,
		Location:    location,
		Credentials: creds,
	}, nil
}
