package main

import (
	"os"

	"github.com/scan-io-git/benchscore/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
