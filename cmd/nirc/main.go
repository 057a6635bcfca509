package main

import (
	"os"

	"github.com/kyouko-taiga/nirc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
