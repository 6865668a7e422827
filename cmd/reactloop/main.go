// Command reactloop answers questions with a ReAct agent backed by an OpenAI-compatible model.
//
//	reactloop ask "What is the length of the word dog"
//	reactloop chat --transcript
package main

import (
	"fmt"
	"os"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func main() {
	if err := rootCmd(&rootFlags{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}
