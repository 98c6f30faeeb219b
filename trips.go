package stationboard

import (
	"strings"

	"github.com/luxtransit/stationboard/feed"
)

func normalizeCategory(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CategorySet builds a case-normalized lookup set from a vehicle
// category allow-list.
func CategorySet(categories []string) map[string]bool {
	set := map[string]bool{}
	for _, c := range categories {
		set[normalizeCategory(c)] = true
	}
	return set
}

// ActiveTrips narrows a feed's trips to those whose service runs on
// the target date and whose route category is allow-listed. Most
// trips in a general-purpose feed fail one of the two tests; dropping
// them silently is the expected path, not an anomaly.
func ActiveTrips(f *feed.Feed, services map[string]bool, categories map[string]bool) map[string]*feed.Trip {
	trips := map[string]*feed.Trip{}
	for id, trip := range f.Trips {
		if !services[trip.ServiceID] {
			continue
		}
		route, found := f.Routes[trip.RouteID]
		if !found {
			continue
		}
		if !categories[normalizeCategory(route.ShortName)] {
			continue
		}
		trips[id] = trip
	}
	return trips
}
