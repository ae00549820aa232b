package main

import (
	"os"

	"littlelemon/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
