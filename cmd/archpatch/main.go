package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		// Privilege failures print the bare message and keep their exit code
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_, _ = fmt.Fprintln(os.Stdout, exitErr.Message)
			os.Exit(exitErr.Code)
		}

		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := createNewRootCommand().Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

// ExitError represents an error with a specific process exit code
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	return e.Message
}
