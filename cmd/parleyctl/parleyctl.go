package main

import (
	"os"

	"github.com/kiosk404/parley/internal/parleyctl/cmd"
)

func main() {
	command := cmd.NewDefaultParleyCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
