package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rickchristie/reactloop"
	"github.com/rickchristie/reactloop/executor"
	"github.com/rickchristie/reactloop/internal/config"
	"github.com/rickchristie/reactloop/models"
	"github.com/rickchristie/reactloop/prompt"
	"github.com/rickchristie/reactloop/registry"
	"github.com/rickchristie/reactloop/tools"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// scriptedLLM is an llms.Model that replays completions in order.
type scriptedLLM struct {
	completions []string
	calls       int
}

func (s *scriptedLLM) GenerateContent(
	_ context.Context,
	_ []llms.MessageContent,
	_ ...llms.CallOption,
) (*llms.ContentResponse, error) {
	if s.calls >= len(s.completions) {
		return nil, errors.New("script exhausted")
	}
	text := s.completions[s.calls]
	s.calls++
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content:        text,
		GenerationInfo: map[string]any{"PromptTokens": 10, "CompletionTokens": 2},
	}}}, nil
}

func (s *scriptedLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

func newScriptedAgent(completions ...string) *agent {
	model := models.NewLCG(&scriptedLLM{completions: completions})
	reg := registry.New(tools.NewTextLength())
	exec := executor.New(model, reg, prompt.NewDefault(reg.Tools()), executor.DefaultConfig())
	return &agent{exec: exec, model: model, logger: zerolog.Nop()}
}

func TestAsk_PrintsFinalAnswer(t *testing.T) {
	a := newScriptedAgent(
		"I should count the letters.\nAction: get_text_length\nAction Input: \"dog\"",
		"I now know the final answer\nFinal Answer: The word dog has 3 letters.",
	)

	var out bytes.Buffer
	err := ask(context.Background(), &out, a, DefaultQuestion)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "The word dog has 3 letters.")
	assert.Contains(t, out.String(), "(2 iterations, 2 model calls, 24 tokens)")
}

func TestAsk_PrintsStepsOnFailure(t *testing.T) {
	a := newScriptedAgent(
		"Action: get_text_length\nAction Input: dog",
		"Action: search\nAction Input: dog",
	)

	var out bytes.Buffer
	err := ask(context.Background(), &out, a, DefaultQuestion)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reactloop.ErrToolNotFound))

	assert.Contains(t, out.String(), "Steps before failure:")
	assert.Contains(t, out.String(), `1. get_text_length("dog") -> 3`)
}

func TestResolveConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REACT_MAX_ITERATIONS", "10")

	flags := &rootFlags{}
	root := rootCmd(flags)
	askSub, _, err := root.Find([]string{"ask"})
	require.NoError(t, err)

	require.NoError(t, askSub.ParseFlags([]string{
		"--env-file", filepath.Join(t.TempDir(), "absent.env"),
		"--max-iterations", "3",
		"-m", "gpt-x",
		"--log-level", "debug",
	}))

	cfg, err := flags.resolveConfig(askSub)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, "gpt-x", cfg.Model)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)

	a, err := flags.newAgent(askSub, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 3, a.exec.Config().MaxIterations)
	assert.Equal(t, "gpt-x", a.model.ModelName())
}

func TestResolveConfig_FlagsValidatedLikeEnvironment(t *testing.T) {
	type input struct {
		args []string
	}

	type expected struct {
		provider string
		model    string
		err      bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "github provider picks the github default model",
			input:    input{args: []string{"--provider", "GitHub"}},
			expected: expected{provider: config.ProviderGitHub, model: config.DefaultGitHubModel},
		},
		{
			name:     "explicit model wins over provider default",
			input:    input{args: []string{"--provider", "github", "-m", "meta/llama-3"}},
			expected: expected{provider: config.ProviderGitHub, model: "meta/llama-3"},
		},
		{
			name:     "unknown provider is rejected",
			input:    input{args: []string{"--provider", "bogus"}},
			expected: expected{err: true},
		},
		{
			name:     "zero max iterations is rejected",
			input:    input{args: []string{"--max-iterations", "0"}},
			expected: expected{err: true},
		},
		{
			name:     "negative max iterations is rejected",
			input:    input{args: []string{"--max-iterations=-2"}},
			expected: expected{err: true},
		},
		{
			name:     "bad log level is rejected",
			input:    input{args: []string{"--log-level", "loud"}},
			expected: expected{err: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("GITHUB_TOKEN", "ghp-test")
			t.Setenv("REACT_PROVIDER", "")
			t.Setenv("OPENAI_MODEL", "")
			t.Setenv("REACT_MAX_ITERATIONS", "")
			t.Setenv("LOG_LEVEL", "")

			flags := &rootFlags{}
			root := rootCmd(flags)
			askSub, _, err := root.Find([]string{"ask"})
			require.NoError(t, err)

			args := append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}, tt.input.args...)
			require.NoError(t, askSub.ParseFlags(args))

			cfg, err := flags.resolveConfig(askSub)
			if tt.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.provider, cfg.Provider)
			assert.Equal(t, tt.expected.model, cfg.Model)
		})
	}
}

func TestAsk_ReportsUsagePerRun(t *testing.T) {
	a := newScriptedAgent(
		"Action: get_text_length\nAction Input: dog",
		"Final Answer: 3",
		"Action: get_text_length\nAction Input: cat",
		"Final Answer: 3",
	)

	var first, second bytes.Buffer
	require.NoError(t, ask(context.Background(), &first, a, DefaultQuestion))
	require.NoError(t, ask(context.Background(), &second, a, "What is the length of the word cat"))

	assert.Contains(t, first.String(), "(2 iterations, 2 model calls, 24 tokens)")
	assert.Contains(t, second.String(), "(2 iterations, 2 model calls, 24 tokens)")
	assert.Equal(t, 4, a.model.Usage().Calls)
}

func TestResolveConfig_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REACT_PROVIDER", "")

	flags := &rootFlags{envFile: filepath.Join(t.TempDir(), "absent.env")}
	_, err := flags.resolveConfig(askCmd(flags))
	assert.Error(t, err)
}
