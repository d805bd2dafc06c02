package main

import "ghgrip/internal/cli"

// The root package builds the same binary as cmd/ghgrip so `go build .`
// works from a checkout.
func main() {
	cli.Execute()
}
