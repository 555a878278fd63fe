package main

import (
	"os"

	"travel_atlas/cmd/atlasctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
