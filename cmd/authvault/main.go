package main

import (
	"os"

	"github.com/MrEthical07/authcore/cmd/authvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
