// Command calckit serves, validates and explores the calculator catalog.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newApp(os.Stdin, os.Stdout, os.Stderr).command()
	if err := cmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// exitError ends the process with code without printing anything more; the
// command already reported the problem.
type exitError struct {
	code int
	msg  string
}

func (e exitError) Error() string { return e.msg }
