package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/thiagonache/jitbench"
)

func main() {
	err := jitbench.RunCLI(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
