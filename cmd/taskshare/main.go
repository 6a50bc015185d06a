// Package main implements the taskshare CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskshare/taskshare/todo"
)

const exitPersistFailed = 2

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(err))
	}
}

var rootCmd = &cobra.Command{
	Use:           "taskshare",
	Short:         "TaskShare - tasks you can share by link",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	rootBackend string
	rootData    string
	rootBaseURL string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootBackend, "backend", "", "Storage backend (file, sqlite, memory)")
	flags.StringVar(&rootData, "data", "", "Data directory (file) or database file (sqlite)")
	flags.StringVar(&rootBaseURL, "base-url", "", "Origin used to build share links")
}

// reportError prints err to stderr and returns the process exit code.
// Persistence failures are reported as warnings because the command's
// result was already printed.
func reportError(err error) int {
	if errors.Is(err, todo.ErrPersist) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return exitPersistFailed
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
