package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func chatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively, one independent run per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			a, err := flags.newAgent(cmd, out)
			if err != nil {
				return err
			}

			rl, err := readline.New(colorCyan + colorBold + "You: " + colorReset)
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			fmt.Fprintf(out, "%sType a question, or 'exit' to quit.%s\n", colorDim, colorReset)

			for {
				input, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
						fmt.Fprintf(out, "\n%sChat ended.%s\n", colorYellow, colorReset)
						return nil
					}
					return fmt.Errorf("failed to read input: %w", err)
				}

				input = strings.TrimSpace(input)
				if input == "" {
					continue
				}
				if input == "exit" || input == "quit" {
					fmt.Fprintf(out, "%sGoodbye!%s\n", colorGreen, colorReset)
					return nil
				}

				// Ctrl+C during a run cancels that run only.
				runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
				err = ask(runCtx, out, a, input)
				cancel()
				if err != nil {
					fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
		},
	}
}
