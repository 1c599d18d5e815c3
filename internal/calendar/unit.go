package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the calendar granularity of one page.
type Unit int

const (
	Year Unit = iota + 1
	Month
	Week
	Day
)

var unitNames = map[Unit]string{
	Year:  "year",
	Month: "month",
	Week:  "week",
	Day:   "day",
}

// Units lists the supported units from coarsest to finest.
func Units() []Unit {
	return []Unit{Year, Month, Week, Day}
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// ParseUnit maps "year", "month", "week" or "day" (any case) to its Unit.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return 0, invalid("unit", s, "must be one of year, month, week, day")
}

func (u Unit) MarshalText() ([]byte, error) {
	if _, ok := unitNames[u]; !ok {
		return nil, invalid("unit", int(u), "unknown unit")
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Order selects whether page 1 is the earliest (Asc) or the latest (Desc) bucket.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	switch o {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

func (o Order) valid() bool {
	return o == Asc || o == Desc
}

// ParseOrder maps "asc" or "desc" to its Order. The empty string is Asc.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, invalid("order", s, "must be asc or desc")
}

func (o Order) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, invalid("order", int(o), "unknown order")
	}
	return []byte(o.String()), nil
}

func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// unitRule holds the alignment, stepping and labeling rules of one Unit.
// boundary(origin, k) is the start of the k-th bucket after the one starting at origin. Every
// page edge is derived from origin's date fields, so page k's end is page k+1's start.
type unitRule interface {
	truncate(t time.Time, offset int) time.Time
	boundary(origin time.Time, k int) time.Time
	count(initial, final time.Time) int
	defaultFormat() string
}

func ruleFor(u Unit) (unitRule, bool) {
	switch u {
	case Year:
		return yearRule{}, true
	case Month:
		return monthRule{}, true
	case Week:
		return weekRule{}, true
	case Day:
		return dayRule{}, true
	}
	return nil, false
}

type yearRule struct{}

func (yearRule) truncate(t time.Time, _ int) time.Time {
	return dayStart(t.Year(), time.January, 1, t.Location())
}

func (yearRule) boundary(origin time.Time, k int) time.Time {
	return dayStart(origin.Year()+k, time.January, 1, origin.Location())
}

func (yearRule) count(initial, final time.Time) int { return final.Year() - initial.Year() }

func (yearRule) defaultFormat() string { return "%Y" }

type monthRule struct{}

func (monthRule) truncate(t time.Time, _ int) time.Time {
	return dayStart(t.Year(), t.Month(), 1, t.Location())
}

func (monthRule) boundary(origin time.Time, k int) time.Time {
	return dayStart(origin.Year(), origin.Month()+time.Month(k), 1, origin.Location())
}

func (monthRule) count(initial, final time.Time) int {
	return (final.Year()-initial.Year())*12 + int(final.Month()-initial.Month())
}

func (monthRule) defaultFormat() string { return "%Y-%m" }

// weekRule starts every week on the weekday given by offset (0 is Sunday).
type weekRule struct{}

func (weekRule) truncate(t time.Time, offset int) time.Time {
	back := (int(t.Weekday()) - offset + 7) % 7
	return dayStart(t.Year(), t.Month(), t.Day()-back, t.Location())
}

func (weekRule) boundary(origin time.Time, k int) time.Time {
	return dayStart(origin.Year(), origin.Month(), origin.Day()+7*k, origin.Location())
}

func (weekRule) count(initial, final time.Time) int { return daysBetween(initial, final) / 7 }

func (weekRule) defaultFormat() string { return "%Y-%W" }

type dayRule struct{}

func (dayRule) truncate(t time.Time, _ int) time.Time {
	return dayStart(t.Year(), t.Month(), t.Day(), t.Location())
}

func (dayRule) boundary(origin time.Time, k int) time.Time {
	return dayStart(origin.Year(), origin.Month(), origin.Day()+k, origin.Location())
}

func (dayRule) count(initial, final time.Time) int { return daysBetween(initial, final) }

func (dayRule) defaultFormat() string { return "%Y-%m-%d" }

// dayStart returns the first instant of the given date in loc. Out-of-range month and day
// values are normalised as in time.Date. When a DST change skips local midnight, time.Date
// may land on the previous evening; the day then starts where that zone period ends.
func dayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if sameDate(t, want) {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() && sameDate(end, want) {
		return end
	}
	return t
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts calendar days between the dates of a and b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
