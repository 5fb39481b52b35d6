package main

import "github.com/mcoot/blokus-go/internal/cli"

func main() {
	cli.Execute()
}
