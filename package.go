// Package reactloop implements a single-tool ReAct (Reasoning and Acting) agent loop.
//
// The loop repeatedly prompts a language model with a task and a tool catalog, parses the
// model's free-text reply into either a tool invocation ([AgentAction]) or a final answer
// ([AgentFinish]), runs the tool, and replays the observation into the next prompt until the
// model declares completion.
//
// The root package holds the shared vocabulary: decisions, steps, run state, the collaborator
// interfaces ([Model], [ToolFinder], [OutputParser], [ScratchpadFormatter], [PromptRenderer]),
// typed errors, and hook events. Default implementations live in subpackages:
//
//   - registry: the tool registry
//   - parser: the ReAct text-to-decision parser
//   - scratchpad: the history formatter
//   - prompt: the text/template prompt renderer
//   - executor: the agent loop driver
//   - hooks: the hook registry
//   - models: the langchaingo model adapter
//   - loggers: transcript and zerolog hooks
//   - tools: built-in tools
//
// # Quick Start
//
//	model, err := models.NewOpenAI("gpt-4o-mini", os.Getenv("OPENAI_API_KEY"), "")
//	if err != nil {
//	    return err
//	}
//
//	reg := registry.New(tools.NewTextLength())
//	exec := executor.New(model, reg, prompt.NewDefault(reg.Tools()), executor.DefaultConfig()).
//	    RegisterHook(loggers.NewTranscriptHook(os.Stdout))
//
//	result, err := exec.Run(ctx, "What is the length of the word dog")
//	if err != nil {
//	    // err is a *reactloop.RunError; result.History holds the partial history.
//	}
//	fmt.Println(result.Output)
package reactloop
