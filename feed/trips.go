package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

type TripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

func ParseTrips(data io.Reader) (map[string]*Trip, error) {
	tripCsv := []*TripCSV{}
	if err := gocsv.Unmarshal(data, &tripCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling trips csv: %w", err)
	}

	trips := map[string]*Trip{}
	for _, t := range tripCsv {
		if t.ID == "" || t.RouteID == "" || t.ServiceID == "" {
			continue
		}
		trips[t.ID] = &Trip{
			ID:        t.ID,
			RouteID:   t.RouteID,
			ServiceID: t.ServiceID,
			Headsign:  strings.TrimSpace(t.Headsign),
		}
	}

	return trips, nil
}
