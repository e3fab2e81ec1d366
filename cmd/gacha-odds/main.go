package main

import (
	"os"

	"github.com/xtding233/gacha-odds/cmd/gacha-odds/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
