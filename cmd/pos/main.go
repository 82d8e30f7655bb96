// Command pos runs the cafe point-of-sale backend and its maintenance tasks.
//
//	pos serve              start the HTTP server (default)
//	pos migrate            apply pending migrations
//	pos migrate:rollback   roll back the last batch
//	pos migrate:status     show applied and pending migrations
//	pos seed               run the seeders
//	pos route:list         print the route table
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pos",
	Short:         "Cafe POS backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serveCmd.RunE,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
