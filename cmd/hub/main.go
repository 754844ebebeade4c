package main

import "household-hub/internal/cli"

func main() {
	cli.Execute()
}
