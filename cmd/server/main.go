/*
main.go - Application entry point

PURPOSE:
  Command tree for the paperwork calendar: an HTTP server plus two offline
  commands for scripting and support.

COMMANDS:
  serve     Run the HTTP API (config file, hot-reloaded band tables,
            holiday cache warmer, graceful shutdown)
  calc      Compute one calendar from flags and print it
  holidays  Print the observed federal holidays of a year

EXAMPLES:
  # Run with a config file
  ./server serve --config ./server.yaml

  # One-off calculation as JSON
  ./server calc --frequency bi-weekly --pay-begin 2025-03-03 \
      --pay-end 2025-03-16 --first-check 2025-03-21 \
      --benefits-start 2025-04-01 --employees 25 --json

  # Holidays
  ./server holidays --year 2026

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Config file format
*/
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paperwork-calendar",
		Short:         "Payroll paperwork calendar service",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	root.AddCommand(newServeCmd(), newCalcCmd(), newHolidaysCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
