package models

import (
	"context"
	"errors"
	"sync"

	"github.com/rickchristie/reactloop"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// ErrEmptyResponse is returned when the provider answers with no choices.
var ErrEmptyResponse = errors.New("model returned no choices")

// Usage is the cumulative token usage across all calls made through an LCG.
type Usage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Sub returns the usage accrued since an earlier snapshot.
func (u Usage) Sub(earlier Usage) Usage {
	return Usage{
		Calls:        u.Calls - earlier.Calls,
		InputTokens:  u.InputTokens - earlier.InputTokens,
		OutputTokens: u.OutputTokens - earlier.OutputTokens,
		TotalTokens:  u.TotalTokens - earlier.TotalTokens,
	}
}

// LCG adapts a LangChainGo llms.Model to reactloop.Model. The prompt is sent as a single
// human message; the stop sequences and temperature are passed as call options.
//
// Token usage is normalized across providers and accumulated; see Usage.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCG(llm).WithModelName("gpt-4o-mini")
//
//	completion, err := model.Call(ctx, prompt, []string{"\nObservation"})
type LCG struct {
	model       llms.Model
	modelName   string
	temperature float64

	mu    sync.Mutex
	usage Usage
}

// NewLCG creates a new LCG wrapping the given llms.Model with temperature 0.
func NewLCG(model llms.Model) *LCG {
	return &LCG{
		model: model,
	}
}

// WithModelName sets the model name sent with every call. Empty leaves the provider's
// configured model in place.
func (m *LCG) WithModelName(name string) *LCG {
	m.modelName = name
	return m
}

// WithTemperature sets the sampling temperature.
func (m *LCG) WithTemperature(t float64) *LCG {
	m.temperature = t
	return m
}

// ModelName returns the configured model name.
func (m *LCG) ModelName() string {
	return m.modelName
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// Usage returns the token usage accumulated so far.
func (m *LCG) Usage() Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage
}

// Call implements reactloop.Model. Provider failures are returned as
// *reactloop.ModelCallError.
func (m *LCG) Call(ctx context.Context, prompt string, stop []string) (string, error) {
	options := []llms.CallOption{
		llms.WithTemperature(m.temperature),
	}
	if len(stop) > 0 {
		options = append(options, llms.WithStopWords(stop))
	}
	if m.modelName != "" {
		options = append(options, llms.WithModel(m.modelName))
	}

	resp, err := m.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", &reactloop.ModelCallError{Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", &reactloop.ModelCallError{Err: ErrEmptyResponse}
	}

	choice := resp.Choices[0]
	m.record(choice.GenerationInfo)
	return choice.Content, nil
}

func (m *LCG) record(info map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.usage.Calls++
	if info == nil {
		return
	}
	input := extractInputTokens(info)
	output := extractOutputTokens(info)
	m.usage.InputTokens += input
	m.usage.OutputTokens += output
	m.usage.TotalTokens += extractTotalTokens(info, input, output)
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

var _ reactloop.Model = (*LCG)(nil)
