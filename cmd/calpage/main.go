package main

import (
	"os"

	"schedulepager/cmd/calpage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
