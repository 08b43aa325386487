package main

import (
	"os"

	"github.com/abhisek/neuroboost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
