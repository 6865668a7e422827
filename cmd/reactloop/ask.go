package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rickchristie/reactloop"
	"github.com/rickchristie/reactloop/executor"
	"github.com/spf13/cobra"
)

// DefaultQuestion is asked when ask gets no arguments.
const DefaultQuestion = "What is the length of the word dog"

func askCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the final answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				question = DefaultQuestion
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := flags.newAgent(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return ask(ctx, cmd.OutOrStdout(), a, question)
		},
	}
}

// ask runs one question and prints the answer, or the failure with the steps taken so far.
func ask(ctx context.Context, w io.Writer, a *agent, question string) error {
	before := a.model.Usage()
	result, err := a.exec.Run(ctx, question)
	if err != nil {
		printFailure(w, result, err)
		return err
	}

	fmt.Fprintf(w, "%s%sFinal Answer:%s %s\n", colorBold, colorGreen, colorReset, result.Output)
	usage := a.model.Usage().Sub(before)
	fmt.Fprintf(w, "%s(%d iterations, %d model calls, %d tokens)%s\n",
		colorDim, result.Iterations, usage.Calls, usage.TotalTokens, colorReset)
	return nil
}

func printFailure(w io.Writer, result *executor.Result, err error) {
	switch {
	case errors.Is(err, reactloop.ErrCancelled):
		fmt.Fprintf(w, "\n%sRun cancelled.%s\n", colorYellow, colorReset)
	case errors.Is(err, reactloop.ErrMaxIterationsExceeded):
		fmt.Fprintf(w, "%sAgent gave up: %v%s\n", colorYellow, err, colorReset)
	}

	if result == nil || len(result.History) == 0 {
		return
	}
	fmt.Fprintf(w, "%sSteps before failure:%s\n", colorDim, colorReset)
	for i, step := range result.History {
		fmt.Fprintf(w, "  %d. %s(%q) -> %s\n", i+1, step.Action.Tool, step.Action.ToolInput, step.Observation)
	}
}
