package main

import (
	"fmt"
	"os"

	"github.com/device-management-toolkit/amtctl/internal/app"
)

func main() {
	if err := app.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
