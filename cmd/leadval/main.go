package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Command completed and every check passed
	ExitCheckFailed = 1 // Quality gates or schema validation failed
	ExitError       = 2 // Configuration or runtime error
)

// CheckFailedError indicates that the command ran successfully but the data
// it checked did not pass (a quality gate or a schema).
type CheckFailedError struct {
	Message string
}

func (e *CheckFailedError) Error() string {
	return e.Message
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var checkErr *CheckFailedError
	if errors.As(err, &checkErr) {
		return ExitCheckFailed
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
