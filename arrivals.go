package stationboard

import (
	"sort"
	"strings"
	"time"

	"github.com/luxtransit/stationboard/feed"
)

// A vehicle terminating at the target stop.
type Arrival struct {
	Category string
	Time     time.Time
	Origin   string
}

// Station-disambiguation suffixes stripped from origin stop names to
// keep rider-facing labels short.
var originSuffixes = []string{", Gare Centrale", " Gare Centrale", ", Gare", " Gare"}

// ExtractArrivals scans the stop-level timetable and returns the
// arrivals at stopID on the given service date, sorted by time.
//
// Two passes are required: only a trip whose row at stopID carries
// the trip's maximum stop_sequence actually terminates there, and the
// maximum isn't known until all of the trip's rows have been seen.
// Trips that merely pass through stopID on the way to some later stop
// produce no Arrival.
func ExtractArrivals(f *feed.Feed, trips map[string]*feed.Trip, stopID string, date time.Time, loc *time.Location) []Arrival {
	type tripScan struct {
		seen         bool
		minSeq       uint32
		maxSeq       uint32
		originStopID string
		target       *feed.StopTime
	}

	// Pass 1: per trip, find the max sequence, the row at stopID,
	// and the stop at the min sequence (the trip's origin).
	scans := map[string]*tripScan{}
	for _, st := range f.StopTimes {
		if _, found := trips[st.TripID]; !found {
			continue
		}
		sc := scans[st.TripID]
		if sc == nil {
			sc = &tripScan{}
			scans[st.TripID] = sc
		}
		if !sc.seen || st.StopSequence > sc.maxSeq {
			sc.maxSeq = st.StopSequence
		}
		if !sc.seen || st.StopSequence < sc.minSeq {
			sc.minSeq = st.StopSequence
			sc.originStopID = st.StopID
		}
		sc.seen = true
		if st.StopID == stopID {
			sc.target = st
		}
	}

	// Pass 2: keep trips that terminate at stopID and resolve
	// their absolute arrival time.
	arrivals := []Arrival{}
	for tripID, sc := range scans {
		if sc.target == nil {
			continue
		}
		if sc.target.StopSequence != sc.maxSeq {
			// The vehicle passes through and continues; no
			// one disembarks here.
			continue
		}

		trip := trips[tripID]
		route := f.Routes[trip.RouteID]

		arrivals = append(arrivals, Arrival{
			Category: normalizeCategory(route.ShortName),
			Time:     arrivalInstant(sc.target, date, loc),
			Origin:   originLabel(f, sc.originStopID, trip),
		})
	}

	sort.Slice(arrivals, func(i, j int) bool {
		if arrivals[i].Time.Equal(arrivals[j].Time) {
			return arrivals[i].Category < arrivals[j].Category
		}
		return arrivals[i].Time.Before(arrivals[j].Time)
	})

	return arrivals
}

// Resolves a stop time to an absolute instant on the service date.
// Hour values of 24 and beyond wrap into the following calendar day.
func arrivalInstant(st *feed.StopTime, date time.Time, loc *time.Location) time.Time {
	d := st.ArrivalTime()

	hour := int(d / time.Hour)
	minute := int(d/time.Minute) % 60
	sec := int(d/time.Second) % 60

	dayOffset := 0
	if hour >= 24 {
		dayOffset = hour / 24
		hour = hour % 24
	}

	day := date.AddDate(0, 0, dayOffset)
	return resolveLocal(day.Year(), day.Month(), day.Day(), hour, minute, sec, loc)
}

// resolveLocal turns a naive date+time into an instant in loc. A
// local time repeated during a fall-back DST transition has two valid
// instants; this always resolves to the post-transition (standard
// time) one.
func resolveLocal(year int, month time.Month, day, hour, min, sec int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, min, sec, 0, loc)
	later := t.Add(time.Hour)
	if later.Hour() == hour && later.Minute() == min {
		return later
	}
	return t
}

// originLabel derives a rider-facing origin label from the trip's
// first stop, falling back to the trip headsign when the stop is
// unknown. Trailing station suffixes are stripped from the label.
func originLabel(f *feed.Feed, originStopID string, trip *feed.Trip) string {
	name := ""
	if stop, found := f.Stops[originStopID]; found {
		name = stop.Name
	}
	if name == "" {
		name = trip.Headsign
	}

	stripped := name
	for _, suffix := range originSuffixes {
		stripped = strings.TrimSuffix(stripped, suffix)
	}
	stripped = strings.Trim(stripped, " -,")

	if stripped == "" {
		return name
	}
	return stripped
}
