package main

import (
	"fmt"
	"os"

	"camsort/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(faults.ExitCode(err))
	}
}
