package calendar

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// PageRequest is the generic pagination input composed into a calendar lookup.
// Size is carried for callers that also limit the items listed inside a page.
type PageRequest struct {
	Page  int
	Size  int
	Cycle bool
}

// PageView is one resolved page. From and To bound the page as [From, To).
type PageView struct {
	Page  int       `json:"page" yaml:"page"`
	Last  int       `json:"last" yaml:"last"`
	Next  *int      `json:"next" yaml:"next"`
	Prev  *int      `json:"prev" yaml:"prev"`
	From  time.Time `json:"from" yaml:"from"`
	To    time.Time `json:"to" yaml:"to"`
	Cycle bool      `json:"cycle" yaml:"cycle"`

	format string
}

// Label renders From with format, or with the calendar's format when format is empty.
func (v *PageView) Label(format string) (string, error) {
	if format == "" {
		format = v.format
	}
	return renderLabel(format, v.From)
}

// Resolve returns the view of req.Page. Out-of-range pages wrap when req.Cycle is set and
// fail with an *OverflowError otherwise.
func (c *Calendar) Resolve(req PageRequest) (*PageView, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	page, err := c.normalize(req.Page, req.Cycle)
	if err != nil {
		return nil, err
	}
	i := c.snap(page)
	v := &PageView{
		Page:   page,
		Last:   c.pages,
		From:   c.rule.boundary(c.initial, i-1),
		To:     c.rule.boundary(c.initial, i),
		Cycle:  req.Cycle,
		format: c.format,
	}
	switch {
	case page < c.pages:
		v.Next = intPtr(page + 1)
	case req.Cycle:
		v.Next = intPtr(1)
	}
	if page > 1 {
		v.Prev = intPtr(page - 1)
	}
	return v, nil
}

// LabelFor renders the label of any page in [1, Last] without resolving a full view.
func (c *Calendar) LabelFor(page int, format string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	if _, err := c.normalize(page, false); err != nil {
		return "", err
	}
	if format == "" {
		format = c.format
	}
	return renderLabel(format, c.from(page))
}

func (c *Calendar) ready() error {
	if c == nil || c.rule == nil {
		return &InternalError{Reason: "calendar must be built with New or Create"}
	}
	return nil
}

func (c *Calendar) normalize(page int, cycle bool) (int, error) {
	if page >= 1 && page <= c.pages {
		return page, nil
	}
	if !cycle {
		return 0, &OverflowError{Page: page, Last: c.pages}
	}
	return ((page-1)%c.pages+c.pages)%c.pages + 1, nil
}

// snap maps a page number to its ascending bucket index. It is its own inverse.
func (c *Calendar) snap(page int) int {
	if c.order == Desc {
		return c.pages + 1 - page
	}
	return page
}

func (c *Calendar) from(page int) time.Time {
	return c.rule.boundary(c.initial, c.snap(page)-1)
}

func compileFormat(format string) (*strftime.Strftime, error) {
	if !strings.Contains(format, "%") {
		return nil, invalid("format", format, "template has no conversion directive")
	}
	f, err := strftime.New(format)
	if err != nil {
		return nil, invalid("format", format, err.Error())
	}
	return f, nil
}

func renderLabel(format string, t time.Time) (string, error) {
	f, err := compileFormat(format)
	if err != nil {
		return "", err
	}
	return f.FormatString(t), nil
}

func intPtr(n int) *int { return &n }
