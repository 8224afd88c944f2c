// main holds the entry logic for the gitglance CLI.
package main

import (
	"github.com/gitglance/gitglance/cmd"
	"github.com/gitglance/gitglance/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
