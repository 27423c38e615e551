package main

import (
	"os"

	"github.com/navfs/navigator/cmd/nav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
