package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"schedulepager/internal/calendar"
)

const dateLayout = "2006-01-02"

type pagesOptions struct {
	start    string
	end      string
	timezone string
	unit     string
	order    string
	offset   int
	page     int
	cycle    bool
	format   string
	all      bool
	output   string
}

// pageOutput is one printed page: the view plus its rendered label.
type pageOutput struct {
	calendar.PageView `yaml:",inline"`
	Label             string `yaml:"label"`
}

func newPagesCmd() *cobra.Command {
	o := &pagesOptions{}
	c := &cobra.Command{
		Use:   "pages",
		Short: "Resolve one page, or every page with --all",
		Example: `  calpage pages --start 2025-01-15 --end 2025-03-02 --unit month --all
  calpage pages --start 2025-03-01T09:00:00Z --end 2025-03-30T18:00:00Z --unit week --offset 1 --page 2 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(cmd.OutOrStdout(), o)
		},
	}

	f := c.Flags()
	f.StringVar(&o.start, "start", "", "period start (RFC3339 or YYYY-MM-DD)")
	f.StringVar(&o.end, "end", "", "period end (RFC3339 or YYYY-MM-DD)")
	f.StringVar(&o.timezone, "tz", "UTC", "IANA timezone the period is paginated in")
	f.StringVar(&o.unit, "unit", "month", "page unit: year, month, week or day")
	f.StringVar(&o.order, "order", "asc", "page order: asc or desc")
	f.IntVar(&o.offset, "offset", 0, "first weekday of a week page (0 Sunday .. 6 Saturday)")
	f.IntVar(&o.page, "page", 1, "page number to resolve")
	f.BoolVar(&o.cycle, "cycle", false, "wrap out-of-range pages instead of failing")
	f.StringVar(&o.format, "format", "", "strftime label format (defaults per unit)")
	f.BoolVar(&o.all, "all", false, "print every page")
	f.StringVarP(&o.output, "output", "o", "text", "output format: text or yaml")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")
	return c
}

func runPages(w io.Writer, o *pagesOptions) error {
	if o.output != "text" && o.output != "yaml" {
		return fmt.Errorf("unknown output %q, want text or yaml", o.output)
	}
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	start, err := parseInstant(o.start, loc)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := parseInstant(o.end, loc)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	order, err := calendar.ParseOrder(o.order)
	if err != nil {
		return err
	}

	cal, err := calendar.Create(o.unit, calendar.Options{
		Period: calendar.Period{Start: start, End: end},
		Order:  order,
		Offset: o.offset,
		Format: o.format,
	})
	if err != nil {
		return err
	}

	requests := []calendar.PageRequest{{Page: o.page, Cycle: o.cycle}}
	if o.all {
		requests = requests[:0]
		for p := 1; p <= cal.Last(); p++ {
			requests = append(requests, calendar.PageRequest{Page: p, Cycle: o.cycle})
		}
	}

	pages := make([]pageOutput, 0, len(requests))
	for _, req := range requests {
		view, err := cal.Resolve(req)
		if err != nil {
			if calendar.IsOverflow(err) {
				return fmt.Errorf("%w (pass --cycle to wrap around)", err)
			}
			return err
		}
		label, err := view.Label("")
		if err != nil {
			return err
		}
		pages = append(pages, pageOutput{PageView: *view, Label: label})
	}

	if o.output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pages); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, p := range pages {
		fmt.Fprintf(w, "%d/%d\t%s\t%s\t%s\n", p.Page, p.Last,
			p.From.Format(time.RFC3339), p.To.Format(time.RFC3339), p.Label)
	}
	return nil
}

// parseInstant accepts RFC3339 or a bare date, and returns the instant in loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor %s", s, dateLayout)
	}
	return t.In(loc), nil
}
