package main

import (
	"fmt"
	"os"

	"github.com/marco-vb/jmmc/cmd/jmmc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
