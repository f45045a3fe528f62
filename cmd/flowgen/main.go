// Package main is the entry point for the flowgen CLI tool.
package main

import (
	"flowgen/internal/cmd"
)

func main() {
	cmd.Execute()
}
