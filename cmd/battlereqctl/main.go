package main

import (
	"github.com/pelletion/battlereq/internal/cli"
)

func main() {
	cli.Execute()
}
