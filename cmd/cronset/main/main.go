package main

import (
	"fmt"
	"os"

	"github.com/djatlantic/cronset/cmd/cronset"
	"github.com/djatlantic/cronset/pkg/style"
)

func main() {
	rootCmd := cronset.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := style.DetectFormat(os.Stderr)
		renderer := style.NewRenderer(os.Stderr, format)
		if renderErr := renderer.RenderError(err); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
