package main

import (
	"os"

	"github.com/okian/advisor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("advisor-cli: " + err.Error() + "\n")
		os.Exit(1)
	}
}
