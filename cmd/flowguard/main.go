package main

import (
	"os"

	"github.com/avi3tal/flowguard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
