package config

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/contrib/gemini"
)

var (
	// ErrMissingCredential is returned when no Google API key is configured.
	ErrMissingCredential = errors.New("config: GOOGLE_API_KEY is not set; export it or add it to a .env file")
	// ErrMissingProject is returned when Vertex AI is selected without a project.
	ErrMissingProject = errors.New("config: GOOGLE_CLOUD_PROJECT is required for the vertex backend")
	// ErrUnknownBackend is returned for a backend other than gemini or vertex.
	ErrUnknownBackend = errors.New("config: unknown backend")
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

// Prefix is the envconfig prefix of App.
const Prefix = "POSTCREW"

// App holds the settings of the postcrew commands.
type App struct {
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	Backend      string `default:"gemini"`
	Project      string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location     string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`
	BaseURL      string `split_words:"true"`
	FastModel    string `split_words:"true" default:"gemini-2.5-flash"`
	CapableModel string `split_words:"true" default:"gemini-2.5-pro"`
	UserID       string `split_words:"true" default:"user1"`
	Streaming    bool   `default:"false"`
	Trace        string `default:"none"`
}

// Load reads App from the environment and validates it.
func Load() (*App, error) {
	conf, err := New[App](Prefix)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate reports a missing credential for the selected backend.
func (a *App) Validate() error {
	switch strings.ToLower(a.Backend) {
	case "", BackendGemini:
		if strings.TrimSpace(a.GoogleAPIKey) == "" {
			return ErrMissingCredential
		}
	case BackendVertex:
		if strings.TrimSpace(a.Project) == "" {
			return ErrMissingProject
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, a.Backend)
	}
	return nil
}

// UsesVertex reports whether requests go to Vertex AI.
func (a *App) UsesVertex() bool {
	return strings.EqualFold(a.Backend, BackendVertex)
}

// TierModels maps each tier to its configured model.
func (a *App) TierModels() postcrew.TierModels {
	models := postcrew.DefaultTierModels()
	if a.FastModel != "" {
		models[postcrew.TierFast] = a.FastModel
	}
	if a.CapableModel != "" {
		models[postcrew.TierCapable] = a.CapableModel
	}
	return models
}

// ClientConfig returns the genai client configuration for the selected backend.
func (a *App) ClientConfig() (*genai.ClientConfig, error) {
	if a.UsesVertex() {
		return gemini.VertexConfig(a.Project, a.Location)
	}
	return gemini.APIKeyConfig(a.GoogleAPIKey, a.BaseURL), nil
}
