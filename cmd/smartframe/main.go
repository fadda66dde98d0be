// Command smartframe infers the state of ML datasets from their column roles
// and validates them against the schema of that state.
package main

import "github.com/mesh-intelligence/smartframe/internal/cli"

func main() {
	cli.Execute()
}
