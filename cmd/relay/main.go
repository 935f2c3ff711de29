// relay runs a linear pipeline of nodes described by a workflow definition.
//
// Usage:
//
//	relay run [--workflow <path>] [--nodes <path|url>]
//	relay serve [--workflow <path>] [--nodes <path|url>]
//	relay builtins
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
