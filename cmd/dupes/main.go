package main

import (
	"os"

	"github.com/bnema/immich-dupes/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
