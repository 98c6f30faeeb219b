package feed

import (
	"strconv"
	"time"
)

// Holds the decoded tables of a static transit feed. A Feed is
// immutable once built: the cache replaces it wholesale on refresh
// and never mutates it in place, so readers need no locking.
type Feed struct {
	Routes        map[string]*Route
	Trips         map[string]*Trip
	Stops         map[string]*Stop
	Calendars     []*Calendar
	CalendarDates []*CalendarDate
	StopTimes     []*StopTime
}

type Route struct {
	ID        string
	ShortName string
	LongName  string
}

type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

type Stop struct {
	ID   string
	Name string
}

// Weekly service pattern. Dates are YYYYMMDD strings, which compare
// correctly as strings. Weekday is a bitmask indexed by time.Weekday.
type Calendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekday   int8
}

type ExceptionType int8

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

// A dated override of a service's weekly pattern.
type CalendarDate struct {
	ServiceID     string
	Date          string
	ExceptionType ExceptionType
}

type StopTime struct {
	TripID       string
	StopID       string
	StopSequence uint32
	Arrival      string // HHMMSS, hours may exceed 23 for post-midnight times
}

func (st *StopTime) ArrivalTime() time.Duration {
	h, _ := strconv.Atoi(st.Arrival[0:2])
	m, _ := strconv.Atoi(st.Arrival[2:4])
	s, _ := strconv.Atoi(st.Arrival[4:6])
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}
