// Package ics renders calendar pages of an event schedule as iCalendar feeds.
package ics

import (
	"bytes"
	"fmt"

	"schedulepager/internal/domain"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//schedulepager//calendar page//EN"

// EncodePage returns a VCALENDAR with one VEVENT per session of page. The page's rooms
// fill each event's LOCATION.
func EncodePage(page *domain.CalendarPage) ([]byte, error) {
	if page == nil || page.Event == nil {
		return nil, fmt.Errorf("encode page: missing event")
	}
	roomNames := make(map[string]string, len(page.Rooms))
	for _, r := range page.Rooms {
		roomNames[r.ID] = r.Name
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(fmt.Sprintf("%s %s", page.Event.Name, page.Label))
	cal.SetXWRCalName(fmt.Sprintf("%s %s", page.Event.Name, page.Label))
	cal.SetTimezoneId(page.Event.Timezone)
	cal.SetXWRTimezone(page.Event.Timezone)

	for _, s := range page.Sessions {
		ev := cal.AddEvent(s.ID + "@" + page.Event.EventCode)
		ev.SetCreatedTime(s.CreatedAt)
		ev.SetDtStampTime(s.UpdatedAt)
		ev.SetModifiedAt(s.UpdatedAt)
		ev.SetStartAt(s.StartTime)
		ev.SetEndAt(s.EndTime)
		ev.SetSummary(s.Title)
		if s.Description != "" {
			ev.SetDescription(s.Description)
		}
		if name, ok := roomNames[s.RoomID]; ok {
			ev.SetLocation(name)
		}
		for _, tag := range s.Tags {
			ev.AddCategory(tag)
		}
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize calendar: %w", err)
	}
	return buf.Bytes(), nil
}
