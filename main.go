package main

import (
	"os"

	"github.com/yahsan2/linear-pm/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
