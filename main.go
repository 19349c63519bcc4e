package main

import "github.com/agentic-research/spyglass/cmd"

func main() {
	cmd.Execute()
}
