package main

import (
	"io"
	"os"
	"strconv"

	"github.com/rickchristie/reactloop/executor"
	"github.com/rickchristie/reactloop/internal/config"
	"github.com/rickchristie/reactloop/loggers"
	"github.com/rickchristie/reactloop/models"
	"github.com/rickchristie/reactloop/prompt"
	"github.com/rickchristie/reactloop/registry"
	"github.com/rickchristie/reactloop/scratchpad"
	"github.com/rickchristie/reactloop/tools"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every subcommand. Flags override the
// environment.
type rootFlags struct {
	envFile       string
	provider      string
	model         string
	maxIterations int
	logLevel      string
	transcript    bool
}

func rootCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reactloop",
		Short:         "Answer questions with a ReAct tool-using agent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file to load")
	pf.StringVar(&flags.provider, "provider", "", "model provider: openai or github (env REACT_PROVIDER)")
	pf.StringVarP(&flags.model, "model", "m", "", "model name (env OPENAI_MODEL)")
	pf.IntVarP(&flags.maxIterations, "max-iterations", "n", 0, "iteration bound (env REACT_MAX_ITERATIONS)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	pf.BoolVarP(&flags.transcript, "transcript", "t", false, "print every prompt and completion")

	cmd.AddCommand(askCmd(flags))
	cmd.AddCommand(chatCmd(flags))
	return cmd
}

// agent bundles what a subcommand needs to run questions.
type agent struct {
	exec   *executor.Executor
	model  *models.LCG
	logger zerolog.Logger
}

// resolveConfig loads the environment with the changed flags layered on top, so flag values
// are defaulted and validated exactly like their environment variables.
func (f *rootFlags) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := make(map[string]string)
	pf := cmd.Flags()
	if pf.Changed("provider") {
		overrides[config.EnvProvider] = f.provider
	}
	if pf.Changed("model") {
		overrides[config.EnvOpenAIModel] = f.model
	}
	if pf.Changed("max-iterations") {
		overrides[config.EnvMaxIterations] = strconv.Itoa(f.maxIterations)
	}
	if pf.Changed("log-level") {
		overrides[config.EnvLogLevel] = f.logLevel
	}

	cfg, err := config.LoadWithOverrides(overrides, f.envFile)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}

// newAgent wires the model, the tool registry, the prompt and the hooks into an executor.
func (f *rootFlags) newAgent(cmd *cobra.Command, out io.Writer) (*agent, error) {
	cfg, err := f.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()

	var model *models.LCG
	switch cfg.Provider {
	case config.ProviderGitHub:
		model, err = models.NewGitHubModel(cfg.Model, cfg.GitHubToken)
	default:
		model, err = models.NewOpenAI(cfg.Model, cfg.APIKey, cfg.BaseURL)
	}
	if err != nil {
		return nil, err
	}
	model.WithTemperature(cfg.Temperature)

	reg := registry.New(tools.NewTextLength())
	exec := executor.New(model, reg, prompt.NewDefault(reg.Tools()), executor.Config{
		MaxIterations: cfg.MaxIterations,
	}).
		WithScratchpad(scratchpad.New().WithLLMPrefix("Thought: ")).
		WithLogger(logger)
	if cfg.LogLevel <= zerolog.DebugLevel {
		exec.RegisterHook(loggers.NewZerologHook(logger))
	}
	if f.transcript {
		exec.RegisterHook(loggers.NewTranscriptHook(out))
	}

	logger.Debug().Str("provider", cfg.Provider).Str("model", cfg.Model).
		Int("max_iterations", cfg.MaxIterations).Float64("temperature", cfg.Temperature).
		Strs("tools", reg.Names()).Msg("agent configured")

	return &agent{exec: exec, model: model, logger: logger}, nil
}
