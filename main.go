// Package main is the entry point for the keo CLI.
package main

import cmd "github.com/Chirag314/kaggle-experiment-orchestrator/cmd/keo"

// main starts the keo CLI application by delegating to the cobra root
// command defined in the keo package.
func main() {
	cmd.Execute()
}
