package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(faults.ExitCode(err))
	}
}
