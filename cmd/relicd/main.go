package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/relicguide/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "relicd",
		Short: "Museum relic guide server and CLI",
		Long:  "relicd serves the relic guide API and runs one-off chat and video lookups against the same configuration",
	}

	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.RelicsCmd())
	rootCmd.AddCommand(admin.ResolveCmd())
	rootCmd.AddCommand(admin.AskCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
