package models

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// GitHubModelsBaseURL is the base URL for the GitHub Models API.
	// The OpenAI-compatible chat completions endpoint is at
	// {baseURL}/chat/completions.
	GitHubModelsBaseURL = "https://models.github.ai/inference"
)

// NewOpenAI creates an LCG backed by the OpenAI chat completions API, or any
// OpenAI-compatible endpoint when baseURL is set.
//
// Example:
//
//	model, err := models.NewOpenAI("gpt-4o-mini", os.Getenv("OPENAI_API_KEY"), "")
func NewOpenAI(model, token, baseURL string, opts ...openai.Option) (*LCG, error) {
	if token == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	baseOpts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		baseOpts = append(baseOpts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewLCG(llm).WithModelName(model), nil
}

// githubHeaderTransport wraps an http.RoundTripper and injects
// GitHub-specific headers into every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(
	req *http.Request,
) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModel creates an LCG backed by the GitHub Models API.
//
// The token must be a GitHub Personal Access Token (fine-grained) with the models:read
// permission. Model names use the publisher/model format, for example "openai/gpt-4o-mini".
func NewGitHubModel(model, token string, opts ...openai.Option) (*LCG, error) {
	if token == "" {
		return nil, fmt.Errorf(
			"github token is required: " +
				"create a fine-grained PAT with models:read " +
				"at https://github.com/settings/personal-access-tokens/new",
		)
	}

	baseOpts := []openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(&githubHeaderTransport{
			base: http.DefaultTransport,
		}),
	}

	// Caller options come after so they can override defaults.
	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Models client: %w", err)
	}
	return NewLCG(llm).WithModelName(model), nil
}
