package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/warp/paperwork-calendar/api"
	"github.com/warp/paperwork-calendar/factory"
	"github.com/warp/paperwork-calendar/payroll"
)

type calcFlags struct {
	req       api.CalendarRequest
	bandsPath string
	asJSON    bool
}

func newCalcCmd() *cobra.Command {
	var f calcFlags
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute one paperwork calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runCalc(cmd.OutOrStdout(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.req.Frequency, "frequency", "bi-weekly", "weekly, bi-weekly, semi monthly or monthly")
	fl.StringVar(&f.req.PayBegin, "pay-begin", "", "first pay period begin date (YYYY-MM-DD)")
	fl.StringVar(&f.req.PayEnd, "pay-end", "", "first pay period end date (YYYY-MM-DD)")
	fl.StringVar(&f.req.FirstCheck, "first-check", "", "first check date (YYYY-MM-DD)")
	fl.StringVar(&f.req.BenefitsStart, "benefits-start", "", "benefits start date (YYYY-MM-DD)")
	fl.IntVar(&f.req.EmployeeCount, "employees", 0, "employee count")
	fl.StringVar(&f.req.ServiceModel, "service-model", string(payroll.ServiceCore), "Core or Preferred")
	fl.StringVar(&f.req.EarlyAccess, "early-access", string(payroll.EarlyAccessNone), `None, "1 week", "2 weeks", "3 weeks" or "30 days"`)
	fl.StringVar(&f.bandsPath, "bands", "", "YAML or JSON band table file")
	fl.BoolVar(&f.asJSON, "json", false, "print the API JSON response")
	return cmd
}

func runCalc(out io.Writer, f calcFlags) error {
	var opts []payroll.Option
	if f.bandsPath != "" {
		bands, err := loadBands(f.bandsPath)
		if err != nil {
			return err
		}
		opts = append(opts, payroll.WithBandTables(bands))
	}

	res, err := payroll.ComputeRaw(f.req.Raw(), opts...)
	if err != nil {
		return err
	}

	if f.asJSON {
		b, err := json.MarshalIndent(api.NewCalendarResponse(uuid.NewString(), res), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	return printCalendar(out, res)
}

func loadBands(path string) (payroll.BandTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := factory.NewBandFactory()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return f.ParseYAML(data)
	default:
		return f.ParseJSON(data)
	}
}

func printCalendar(out io.Writer, res payroll.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBEGIN\tEND\tCHECK\tDEADLINE")
	for i, p := range res.Periods {
		deadline := "-"
		if p.Deadline != nil {
			deadline = p.Deadline.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, p.Begin, p.End, p.Check, deadline)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\ndeadline source: %s\n", res.DeadlineSource)
	if res.EarlyAccessDate != nil {
		fmt.Fprintf(out, "early access:    %s\n", res.EarlyAccessDate)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(out, "%s: %s\n", e.Level, e.Message)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "%s: %s\n", w.Level, w.Message)
	}
	return nil
}
