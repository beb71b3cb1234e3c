// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"

	"github.com/ezrec/bitvec/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(os.Args[0] + ": ")

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
