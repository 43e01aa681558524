package main

import (
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "nestcheck: %s\n", msg)
	}
	os.Exit(exitCode(err))
}
