package main

import "github.com/mcoot/brainplay/internal/cli"

func main() {
	cli.Execute()
}
