package main

import (
	"fmt"
	"os"
)

// Version is injected during build.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, report(err))
		os.Exit(1)
	}
}
