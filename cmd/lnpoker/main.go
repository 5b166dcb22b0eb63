package main

import (
	"github.com/lnpoker/lnpoker/internal/cli"
)

func main() {
	cli.Execute()
}
