package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/paperwork-calendar/calendar"
)

func newHolidaysCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Print the observed federal holidays of a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if year < 1 || year > 9999 {
				return fmt.Errorf("year out of range: %d", year)
			}
			return printHolidays(cmd.OutOrStdout(), year)
		},
	}
	cmd.Flags().IntVar(&year, "year", calendar.Today().Year(), "calendar year")
	return cmd
}

func printHolidays(out io.Writer, year int) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OBSERVED\tACTUAL\tNAME")
	holidays := calendar.FederalCalendar{}.Holidays(year)
	for _, h := range holidays {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", h.Observed, h.Observed.Weekday().String()[:3], h.Actual, h.Name)
	}
	return tw.Flush()
}
