package main

import (
	"os"

	"github.com/solatis/menukeeper/cmd/menukeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
