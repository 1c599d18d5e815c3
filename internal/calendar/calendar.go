// Package calendar partitions a time period into consecutive, unit-aligned pages
// (years, months, weeks or days) and resolves page numbers to their [From, To) intervals.
//
// A Calendar is built once by New and is immutable afterwards, so it is safe to share
// across goroutines. Every Resolve call derives a fresh PageView from the page number.
package calendar

import (
	"fmt"
	"time"
)

// Period is the [Start, End] span to paginate. Both instants must be set, Start must be
// before End, and both must carry the same location.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s]", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
}

func (p Period) validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return invalid("period", p, "both start and end are required")
	}
	if p.Start.Location().String() != p.End.Location().String() {
		return invalid("period", p, fmt.Sprintf("start location %q differs from end location %q",
			p.Start.Location(), p.End.Location()))
	}
	if !p.Start.Before(p.End) {
		return invalid("period", p, "start must be before end")
	}
	return nil
}

// Options is the construction record for New.
type Options struct {
	Period Period
	Order  Order
	// Offset is the weekday a week page starts on (0 Sunday .. 6 Saturday). Only Week uses
	// and validates it.
	Offset int
	// Format overrides the unit's default strftime label template.
	Format string
}

// Calendar holds the aligned bounds and page count of a period for one unit.
type Calendar struct {
	unit    Unit
	rule    unitRule
	order   Order
	offset  int
	format  string
	period  Period
	initial time.Time
	final   time.Time
	pages   int
}

// New validates opts and aligns the period to unit boundaries. It is the only way to get a
// usable Calendar: an unsupported unit yields an *InternalError, bad options a *ValidationError.
func New(unit Unit, opts Options) (*Calendar, error) {
	rule, ok := ruleFor(unit)
	if !ok {
		return nil, &InternalError{Reason: fmt.Sprintf("unsupported unit %s", unit)}
	}
	if err := opts.Period.validate(); err != nil {
		return nil, err
	}
	if !opts.Order.valid() {
		return nil, invalid("order", int(opts.Order), "must be asc or desc")
	}
	if unit == Week && (opts.Offset < 0 || opts.Offset > 6) {
		return nil, invalid("offset", opts.Offset, "must be between 0 and 6")
	}
	format := opts.Format
	if format == "" {
		format = rule.defaultFormat()
	} else if _, err := compileFormat(format); err != nil {
		return nil, err
	}

	c := &Calendar{
		unit:   unit,
		rule:   rule,
		order:  opts.Order,
		offset: opts.Offset,
		format: format,
		period: opts.Period,
	}
	c.initial, c.final, c.pages = align(opts.Period, rule, opts.Offset)
	return c, nil
}

// Create is New keyed by unit name. Unknown names are an *InternalError, as at New.
func Create(unitName string, opts Options) (*Calendar, error) {
	unit, err := ParseUnit(unitName)
	if err != nil {
		return nil, &InternalError{Reason: fmt.Sprintf("unsupported unit %q", unitName)}
	}
	return New(unit, opts)
}

// align snaps start down and end up to unit boundaries. final is always one unit past the
// start of end's bucket, so final > end even when end sits exactly on a boundary.
func align(p Period, rule unitRule, offset int) (initial, final time.Time, pages int) {
	initial = rule.truncate(p.Start, offset)
	final = rule.boundary(rule.truncate(p.End, offset), 1)
	return initial, final, rule.count(initial, final)
}

func (c *Calendar) Unit() Unit { return c.unit }
func (c *Calendar) Order() Order { return c.order }
func (c *Calendar) Offset() int { return c.offset }
func (c *Calendar) Period() Period { return c.period }
func (c *Calendar) Initial() time.Time { return c.initial }
func (c *Calendar) Final() time.Time { return c.final }
func (c *Calendar) Pages() int { return c.pages }
func (c *Calendar) Last() int { return c.pages }
// DefaultFormat is the label template used when Label gets no format: Options.Format or the unit default.
func (c *Calendar) DefaultFormat() string { return c.format }
