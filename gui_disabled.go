//go:build !gui

package main

import (
	"fmt"
	"os"

	"tradetools/config"
)

func initGUI(options, *config.Config) {
	fmt.Fprintln(os.Stderr, "tradetools: built without GUI support (rebuild with -tags gui)")
	os.Exit(1)
}
