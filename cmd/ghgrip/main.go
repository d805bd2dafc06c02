package main

import "ghgrip/internal/cli"

func main() {
	cli.Execute()
}
