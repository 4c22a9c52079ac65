// Package main is the entry point for dbscripts.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zorak1103/dbscripts/cmd"
)

func main() {
	// Exit code semantics: 0 = success, 1 = error or panic
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n❌ PANIC: %v\n", r)
			fmt.Fprintf(os.Stderr, "\nStack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
