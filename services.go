package stationboard

import (
	"time"

	"github.com/luxtransit/stationboard/feed"
)

// ActiveServices computes the set of service IDs operating on the
// given date. The weekly calendar pattern is evaluated first, then
// calendar-date exceptions (holidays, special schedules) are applied
// on top: type 1 adds the service for the date, type 2 removes it. An
// exception can add a service the weekly pattern never mentions.
//
// An empty result means "no scheduled service", not a fault.
func ActiveServices(f *feed.Feed, date time.Time) map[string]bool {
	day := date.Format("20060102")

	services := map[string]bool{}
	for _, cal := range f.Calendars {
		if cal.Weekday&(1<<date.Weekday()) == 0 {
			continue
		}
		if cal.StartDate > day {
			continue
		}
		if cal.EndDate < day {
			continue
		}
		services[cal.ServiceID] = true
	}

	// Exceptions apply strictly after the weekly pattern.
	for _, cd := range f.CalendarDates {
		if cd.Date != day {
			continue
		}
		switch cd.ExceptionType {
		case feed.ExceptionAdded:
			services[cd.ServiceID] = true
		case feed.ExceptionRemoved:
			delete(services, cd.ServiceID)
		}
	}

	return services
}
